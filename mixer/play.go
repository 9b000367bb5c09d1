package mixer

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/pkg/errors"
)

// DefaultBufferSize keeps device latency under the scheduler's lead-in.
const DefaultBufferSize = 50 * time.Millisecond

func audioContext(sampleRate int) (*audio.Context, error) {
	if c := audio.CurrentContext(); c != nil {
		if c.SampleRate() != sampleRate {
			return nil, errors.Errorf("audio context runs at %v Hz, mixer at %v Hz", c.SampleRate(), sampleRate)
		}
		return c, nil
	}
	return audio.NewContext(sampleRate), nil
}

// Start opens the default audio device and begins pulling frames from m,
// which advances the mixer's clock in step with what is actually heard.
// Close the returned player to stop.
func Start(m *Mixer, bufferSize time.Duration) (*audio.Player, error) {
	ac, err := audioContext(m.SampleRate())
	if err != nil {
		return nil, err
	}
	player, err := ac.NewPlayer(m)
	if err != nil {
		return nil, errors.Wrap(err, "creating audio player")
	}
	if bufferSize > 0 {
		player.SetBufferSize(bufferSize)
	}
	player.Play()
	return player, nil
}
