package model

// Sample is decoded, playable stereo audio for one pitch.
type Sample struct {
	Pitch      uint8
	SampleRate int
	Left       []float32
	Right      []float32
}

func (s *Sample) Frames() int {
	if s == nil {
		return 0
	}
	return len(s.Left)
}

// Voice identifies one scheduled instance of a sample.
type Voice = string

type PitchToSamplePath = map[uint8]string
