package sample

import (
	"github.com/jsphweid/keyplayer/model"
	"github.com/jsphweid/keyplayer/util"
)

// Bank maps pitches to playable samples. It is never modified after it is
// built, so it can be shared between playback runs.
type Bank struct {
	samples map[uint8]*model.Sample
}

func NewBank(samples []*model.Sample) *Bank {
	b := &Bank{samples: make(map[uint8]*model.Sample, len(samples))}
	for _, s := range samples {
		if s != nil {
			b.samples[s.Pitch] = s
		}
	}
	return b
}

// Lookup satisfies schedule.SampleProvider.
func (b *Bank) Lookup(pitch uint8) (*model.Sample, bool) {
	s, ok := b.samples[pitch]
	return s, ok
}

func (b *Bank) Len() int {
	return len(b.samples)
}

func (b *Bank) Pitches() []uint8 {
	return util.SortedKeys(b.samples)
}

// Resample converts frames between sample rates by linear interpolation.
func Resample(in []float32, from, to int) []float32 {
	if from == to || len(in) == 0 {
		return in
	}
	n := int(int64(len(in)) * int64(to) / int64(from))
	out := make([]float32, n)
	step := float64(from) / float64(to)
	for i := range out {
		pos := float64(i) * step
		j := int(pos)
		if j >= len(in)-1 {
			out[i] = in[len(in)-1]
			continue
		}
		frac := float32(pos - float64(j))
		out[i] = in[j]*(1-frac) + in[j+1]*frac
	}
	return out
}
