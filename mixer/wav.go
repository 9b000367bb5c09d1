package mixer

import (
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"
)

// Normalize scales both channels so the loudest sample peaks just under
// full scale. Silence is left alone.
func Normalize(left, right []float32) {
	var peak float64
	for i := range left {
		peak = math.Max(peak, math.Abs(float64(left[i])))
		peak = math.Max(peak, math.Abs(float64(right[i])))
	}
	if peak == 0 {
		return
	}
	g := float32(0.99 / peak)
	for i := range left {
		left[i] *= g
		right[i] *= g
	}
}

// WriteWAV encodes the frames as normalized 16-bit stereo PCM.
func WriteWAV(w io.WriteSeeker, left, right []float32, sampleRate int) error {
	if len(left) != len(right) {
		return errors.New("channel lengths differ")
	}
	Normalize(left, right)

	data := make([]int, 0, 2*len(left))
	for i := range left {
		data = append(data, int(toInt16(left[i])), int(toInt16(right[i])))
	}
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 2,
			SampleRate:  sampleRate,
		},
		Data:           data,
		SourceBitDepth: 16,
	}

	// 1 is PCM
	enc := wav.NewEncoder(w, sampleRate, 16, 2, 1)
	if err := enc.Write(buf); err != nil {
		return errors.Wrap(err, "writing wav data")
	}
	return errors.Wrap(enc.Close(), "closing wav")
}
