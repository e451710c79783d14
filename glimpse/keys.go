package glimpse

import "github.com/go-gl/glfw/v3.3/glfw"

//go:generate go tool stringer -type Key -trimprefix Key

type Key int

const (
	KeyEscape Key = iota
	KeyEnter
	KeySpace
	Key5
	KeyMinus
	KeyEqual
	KeyC
	KeyQ
	KeyR
	KeyS
	KeyW
	KeyKP5
	KeyKPAdd
	KeyKPSubtract
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
)

var glfwToKey = map[glfw.Key]Key{
	glfw.KeyEscape:     KeyEscape,
	glfw.KeyEnter:      KeyEnter,
	glfw.KeySpace:      KeySpace,
	glfw.Key5:          Key5,
	glfw.KeyMinus:      KeyMinus,
	glfw.KeyEqual:      KeyEqual,
	glfw.KeyC:          KeyC,
	glfw.KeyQ:          KeyQ,
	glfw.KeyR:          KeyR,
	glfw.KeyS:          KeyS,
	glfw.KeyW:          KeyW,
	glfw.KeyKP5:        KeyKP5,
	glfw.KeyKPAdd:      KeyKPAdd,
	glfw.KeyKPSubtract: KeyKPSubtract,
	glfw.KeyLeft:       KeyLeft,
	glfw.KeyRight:      KeyRight,
	glfw.KeyUp:         KeyUp,
	glfw.KeyDown:       KeyDown,
}
