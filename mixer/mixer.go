package mixer

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/google/uuid"
	"github.com/jsphweid/keyplayer/model"
	"github.com/jsphweid/keyplayer/util"
	"github.com/pkg/errors"
)

var (
	ErrEmptySample  = errors.New("sample has no frames")
	ErrSampleRate   = errors.New("sample rate does not match the mixer")
	ErrTooLate      = errors.New("start time has already passed")
	ErrUnknownVoice = errors.New("unknown voice")
)

// interleaved 16-bit stereo
const bytesPerFrame = 4

type voice struct {
	sample *model.Sample
	gain   float32
	start  int64
	// -1 until a stop is scheduled
	stop int64
}

// Mixer is a sample accurate audio clock. Voices are scheduled against the
// number of frames mixed so far and mixed in as the clock reaches them, so
// the frame a voice starts on never depends on when Read is called.
type Mixer struct {
	mu         sync.Mutex
	sampleRate int
	frame      int64
	voices     map[model.Voice]*voice
}

func New(sampleRate int) *Mixer {
	return &Mixer{
		sampleRate: sampleRate,
		voices:     make(map[model.Voice]*voice),
	}
}

func (m *Mixer) SampleRate() int {
	return m.sampleRate
}

// CurrentTime is the clock position in seconds.
func (m *Mixer) CurrentTime() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return float64(m.frame) / float64(m.sampleRate)
}

func (m *Mixer) toFrame(at float64) int64 {
	return int64(math.Round(at * float64(m.sampleRate)))
}

// Active is the number of voices that have not finished yet.
func (m *Mixer) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.voices)
}

func (m *Mixer) ScheduleStart(s *model.Sample, at, gain float64) (model.Voice, error) {
	if s == nil || s.Frames() == 0 {
		return "", ErrEmptySample
	}
	if s.SampleRate != m.sampleRate {
		return "", errors.Wrapf(ErrSampleRate, "got %v, want %v", s.SampleRate, m.sampleRate)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	start := m.toFrame(at)
	if start < m.frame {
		return "", errors.Wrapf(ErrTooLate, "%.4fs is before %.4fs", at, float64(m.frame)/float64(m.sampleRate))
	}

	id := uuid.New().String()
	m.voices[id] = &voice{
		sample: s,
		gain:   float32(gain),
		start:  start,
		stop:   -1,
	}
	return id, nil
}

func (m *Mixer) ScheduleStop(v model.Voice, at float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	vc, ok := m.voices[v]
	if !ok {
		return ErrUnknownVoice
	}
	// stopping in the past silences from the current frame on
	vc.stop = util.Max(m.toFrame(at), m.frame)
	return nil
}

// mix adds the next len(left) frames of every voice and advances the clock.
func (m *Mixer) mix(left, right []float32) {
	m.mu.Lock()
	defer m.mu.Unlock()

	from := m.frame
	to := from + int64(len(left))

	for id, v := range m.voices {
		end := v.start + int64(v.sample.Frames())
		if v.stop >= 0 {
			end = util.Min(end, v.stop)
		}
		if end <= from {
			delete(m.voices, id)
			continue
		}
		if v.start >= to {
			continue
		}

		first := util.Max(v.start, from)
		last := util.Min(end, to)
		for f := first; f < last; f++ {
			i := f - v.start
			left[f-from] += v.sample.Left[i] * v.gain
			right[f-from] += v.sample.Right[i] * v.gain
		}
		if end <= to {
			delete(m.voices, id)
		}
	}
	m.frame = to
}

// Read fills p with interleaved 16-bit little endian stereo PCM. It never
// runs dry: with nothing scheduled it produces silence, so it can back a
// live audio player indefinitely.
func (m *Mixer) Read(p []byte) (int, error) {
	frames := len(p) / bytesPerFrame
	if frames == 0 {
		return 0, nil
	}
	left := make([]float32, frames)
	right := make([]float32, frames)
	m.mix(left, right)

	for i := 0; i < frames; i++ {
		binary.LittleEndian.PutUint16(p[bytesPerFrame*i:], uint16(toInt16(left[i])))
		binary.LittleEndian.PutUint16(p[bytesPerFrame*i+2:], uint16(toInt16(right[i])))
	}
	return frames * bytesPerFrame, nil
}

// Render mixes from the current clock position up to until seconds.
func (m *Mixer) Render(until float64) ([]float32, []float32) {
	m.mu.Lock()
	n := m.toFrame(until) - m.frame
	m.mu.Unlock()
	if n <= 0 {
		return nil, nil
	}

	left := make([]float32, n)
	right := make([]float32, n)
	m.mix(left, right)
	return left, right
}

func toInt16(v float32) int16 {
	return int16(util.Clamp(v, -1, 1) * 32767)
}
