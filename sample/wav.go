package sample

import (
	"io"

	"github.com/go-audio/wav"
	"github.com/jsphweid/keyplayer/model"
	"github.com/pkg/errors"
)

var ErrInvalidWAV = errors.New("not a valid wav file")

// DecodeWAV reads a PCM wav into a stereo sample at sampleRate. Mono files
// play on both channels, extra channels beyond two are dropped.
func DecodeWAV(r io.ReadSeeker, pitch uint8, sampleRate int) (*model.Sample, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrInvalidWAV
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "reading wav samples")
	}

	chans := int(dec.NumChans)
	if chans == 0 || dec.BitDepth == 0 {
		return nil, ErrInvalidWAV
	}
	frames := len(buf.Data) / chans
	maxVal := float32(int(1) << (uint(dec.BitDepth) - 1))
	// 8-bit PCM is unsigned, centred on 128
	var offset float32
	if dec.BitDepth == 8 {
		offset = 128
	}
	toFloat := func(v int) float32 {
		return (float32(v) - offset) / maxVal
	}

	left := make([]float32, frames)
	right := make([]float32, frames)
	for i := 0; i < frames; i++ {
		left[i] = toFloat(buf.Data[i*chans])
		if chans > 1 {
			right[i] = toFloat(buf.Data[i*chans+1])
		} else {
			right[i] = left[i]
		}
	}

	from := int(dec.SampleRate)
	return &model.Sample{
		Pitch:      pitch,
		SampleRate: sampleRate,
		Left:       Resample(left, from, sampleRate),
		Right:      Resample(right, from, sampleRate),
	}, nil
}
