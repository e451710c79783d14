package capture

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/oliverbestmann/vrdesk/frameslot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mu       sync.Mutex
	outputs  []string
	failures int
	calls    int
	lastName string
}

func (f *fakeSource) Outputs() []string {
	return f.outputs
}

func (f *fakeSource) Capture(output string, includeCursor bool) (Image, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	f.lastName = output

	if f.failures > 0 {
		f.failures--
		return Image{}, errors.New("transient")
	}

	// slow down the loop a little
	time.Sleep(100 * time.Microsecond)

	return Image{
		Pixels: make([]byte, 4*2*4),
		Width:  4,
		Height: 2,
		Stride: 16,
	}, nil
}

func (f *fakeSource) Close() error {
	return nil
}

func TestDriverPrime(t *testing.T) {
	slot := frameslot.New()
	driver := NewDriver(&fakeSource{outputs: []string{"DP-1"}}, slot, "DP-1")

	frame, err := driver.Prime()
	require.NoError(t, err)

	assert.Equal(t, 4, frame.Width)
	assert.Equal(t, 2, frame.Height)
	assert.Equal(t, uint64(1), frame.Version)
	assert.Nil(t, frame.Pixels)
	assert.Equal(t, uint64(1), slot.Version())
}

func TestDriverPrimeFailure(t *testing.T) {
	driver := NewDriver(&fakeSource{outputs: []string{"DP-1"}, failures: 1}, frameslot.New(), "")

	_, err := driver.Prime()
	require.Error(t, err)
	assert.Equal(t, uint64(1), driver.Stats().Failures)
}

func TestDriverFallsBackToFirstOutput(t *testing.T) {
	source := &fakeSource{outputs: []string{"HDMI-1", "DP-1"}}
	driver := NewDriver(source, frameslot.New(), "does-not-exist")
	assert.Equal(t, "HDMI-1", driver.Output())

	_, err := driver.Prime()
	require.NoError(t, err)
	assert.Equal(t, "HDMI-1", source.lastName)
}

func TestDriverKeepsRequestedOutput(t *testing.T) {
	driver := NewDriver(&fakeSource{outputs: []string{"HDMI-1", "DP-1"}}, frameslot.New(), "DP-1")
	assert.Equal(t, "DP-1", driver.Output())
}

func TestDriverRetriesAfterFailures(t *testing.T) {
	slot := frameslot.New()
	driver := NewDriver(&fakeSource{outputs: []string{"DP-1"}, failures: 5}, slot, "DP-1")

	driver.Start()

	require.Eventually(t, func() bool {
		return slot.Version() >= 3
	}, 5*time.Second, time.Millisecond)

	driver.Stop()

	stats := driver.Stats()
	assert.Equal(t, uint64(5), stats.Failures)
	assert.GreaterOrEqual(t, stats.Captures, uint64(3))
}

func TestDriverStopJoinsLoop(t *testing.T) {
	slot := frameslot.New()
	driver := NewDriver(&fakeSource{outputs: []string{"DP-1"}}, slot, "DP-1")

	driver.Start()

	require.Eventually(t, func() bool {
		return slot.Version() > 0
	}, 5*time.Second, time.Millisecond)

	driver.Stop()

	// nothing is written after Stop returned
	version := slot.Version()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, version, slot.Version())

	// stopping again is a no-op
	driver.Stop()
}

func TestDriverStartTwicePanics(t *testing.T) {
	driver := NewDriver(&fakeSource{outputs: []string{"DP-1"}}, frameslot.New(), "DP-1")

	driver.Start()
	defer driver.Stop()

	assert.Panics(t, driver.Start)
}

func TestDriverRejectsInconsistentImage(t *testing.T) {
	driver := NewDriver(badSource{}, frameslot.New(), "")

	_, err := driver.Prime()
	require.Error(t, err)
}

type badSource struct{}

func (badSource) Outputs() []string { return []string{"x"} }

func (badSource) Capture(string, bool) (Image, error) {
	return Image{Pixels: make([]byte, 4), Width: 4, Height: 4, Stride: 16}, nil
}

func (badSource) Close() error { return nil }

func TestBlendCursor(t *testing.T) {
	pixels := make([]byte, 2*2*4)
	for idx := range pixels {
		pixels[idx] = 100
	}

	cursor := []uint32{
		0xffff0000, // opaque red
		0x00000000, // transparent
	}

	// clip the second cursor column at the image border
	blendCursor(pixels, 2, 2, 8, cursor, 2, 1, 1, 1)

	// top row untouched
	assert.Equal(t, []byte{100, 100, 100, 100, 100, 100, 100, 100}, pixels[:8])

	// bottom left untouched, bottom right is red in BGRA
	assert.Equal(t, []byte{100, 100, 100, 100}, pixels[8:12])
	assert.Equal(t, []byte{0, 0, 255, 255}, pixels[12:16])
}

func TestPatternSource(t *testing.T) {
	source, err := NewPatternSource(32, 16, 1000)
	require.NoError(t, err)
	defer source.Close()

	image, err := source.Capture(PatternOutput, true)
	require.NoError(t, err)

	assert.Equal(t, 32, image.Width)
	assert.Equal(t, 16, image.Height)
	assert.Equal(t, 128, image.Stride)
	assert.Len(t, image.Pixels, 128*16)

	for idx := 3; idx < len(image.Pixels); idx += 4 {
		require.Equal(t, byte(0xff), image.Pixels[idx])
	}
}

func TestPatternSourceSmallerThanCursor(t *testing.T) {
	source, err := NewPatternSource(4, 2, 1000)
	require.NoError(t, err)
	defer source.Close()

	image, err := source.Capture(PatternOutput, true)
	require.NoError(t, err)
	assert.Len(t, image.Pixels, 4*2*4)

	// the cursor covers the whole tiny image
	for _, value := range image.Pixels {
		require.Equal(t, byte(0xff), value)
	}
}

func TestFillSquareClipsToBounds(t *testing.T) {
	const width, height, stride = 10, 3, 40

	pixels := make([]byte, stride*height)
	fillSquare(pixels, stride, width, height, 5, 1, 16)

	assert.Len(t, pixels, stride*height)

	for y := range height {
		for x := range width {
			want := byte(0)
			if x >= 5 && y >= 1 {
				want = 0xff
			}

			assert.Equal(t, want, pixels[y*stride+x*4], "pixel %d,%d", x, y)
		}
	}

	pixels = make([]byte, stride*height)
	fillSquare(pixels, stride, width, height, -20, -20, 16)
	assert.Equal(t, make([]byte, stride*height), pixels)
}
