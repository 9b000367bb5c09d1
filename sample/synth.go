package sample

import (
	"io"

	"github.com/jsphweid/keyplayer/model"
	"github.com/pkg/errors"
	meltysynth "github.com/sinshu/go-meltysynth/meltysynth"
)

// render block, matches the synth's internal block size
const block = 64

// synthesizer is the part of meltysynth.Synthesizer used to render a sample.
type synthesizer interface {
	NoteOn(channel, key, velocity int32)
	NoteOff(channel, key int32)
	Render(left, right []float32)
}

// newSynthesizer is swapped out in tests.
var newSynthesizer = func(sf io.Reader, sampleRate int) (func() (synthesizer, error), error) {
	sfnt, err := meltysynth.NewSoundFont(sf)
	if err != nil {
		return nil, errors.Wrap(err, "reading soundfont")
	}
	settings := meltysynth.NewSynthesizerSettings(int32(sampleRate))
	settings.BlockSize = block
	return func() (synthesizer, error) {
		syn, err := meltysynth.NewSynthesizer(sfnt, settings)
		if err != nil {
			return nil, errors.Wrap(err, "creating synthesizer")
		}
		return syn, nil
	}, nil
}

// Synthesize renders a one-shot sample per pitch from a SoundFont: the key
// is held for hold seconds, then released and left to ring for tail seconds.
func Synthesize(sf io.Reader, pitches []uint8, sampleRate int, hold, tail float64) (*Bank, error) {
	newSynth, err := newSynthesizer(sf, sampleRate)
	if err != nil {
		return nil, err
	}

	holdFrames := int(hold * float64(sampleRate))
	tailFrames := int(tail * float64(sampleRate))

	var samples []*model.Sample
	for _, pitch := range pitches {
		// new synth per pitch so no voice bleeds into the next sample
		syn, err := newSynth()
		if err != nil {
			return nil, err
		}
		s := &model.Sample{Pitch: pitch, SampleRate: sampleRate}

		syn.NoteOn(0, int32(pitch), 127)
		s.Left, s.Right = render(syn, holdFrames, s.Left, s.Right)
		syn.NoteOff(0, int32(pitch))
		s.Left, s.Right = render(syn, tailFrames, s.Left, s.Right)

		samples = append(samples, s)
	}
	return NewBank(samples), nil
}

func render(syn synthesizer, frames int, left, right []float32) ([]float32, []float32) {
	l := make([]float32, block)
	r := make([]float32, block)
	for done := 0; done < frames; done += block {
		n := block
		if frames-done < n {
			n = frames - done
		}
		// always render whole blocks and keep what is needed
		syn.Render(l, r)
		left = append(left, l[:n]...)
		right = append(right, r[:n]...)
	}
	return left, right
}
