package sample

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/jsphweid/keyplayer/assets"
	"github.com/jsphweid/keyplayer/logger"
	"github.com/jsphweid/keyplayer/model"
	"github.com/stretchr/testify/assert"
)

func writeWAV(t *testing.T, path string, rate, chans int, data []int) {
	t.Helper()
	writeWAVBits(t, path, rate, chans, 16, data)
}

func writeWAVBits(t *testing.T, path string, rate, chans, bits int, data []int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, rate, bits, chans, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: chans, SampleRate: rate},
		Data:           data,
		SourceBitDepth: bits,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestDecodeStereoWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "C4.wav")
	writeWAV(t, path, 8000, 2, []int{16384, -16384, 0, 32767})

	f, err := os.Open(path)
	assert.NoError(t, err)
	defer f.Close()
	s, err := DecodeWAV(f, 60, 8000)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(uint8(60), s.Pitch)
	assert.Equal(8000, s.SampleRate)
	assert.Equal(2, s.Frames())
	assert.InDelta(0.5, s.Left[0], 1e-4)
	assert.InDelta(-0.5, s.Right[0], 1e-4)
	assert.InDelta(1.0, s.Right[1], 1e-4)
}

func TestDecodeMonoWAVPlaysOnBothChannels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "A4.wav")
	writeWAV(t, path, 8000, 1, []int{8192, -8192})

	f, _ := os.Open(path)
	defer f.Close()
	s, err := DecodeWAV(f, 69, 8000)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(s.Left, s.Right)
	assert.InDelta(0.25, s.Left[0], 1e-4)
}

func TestDecode8BitWAVIsUnsigned(t *testing.T) {
	path := filepath.Join(t.TempDir(), "C4.wav")
	writeWAVBits(t, path, 8000, 1, 8, []int{128, 128, 255, 0, 192})

	f, _ := os.Open(path)
	defer f.Close()
	s, err := DecodeWAV(f, 60, 8000)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(5, s.Frames())
	assert.Equal(float32(0), s.Left[0])
	assert.Equal(float32(0), s.Right[1])
	assert.InDelta(127.0/128, s.Left[2], 1e-6)
	assert.InDelta(-1.0, s.Left[3], 1e-6)
	assert.InDelta(0.5, s.Left[4], 1e-6)
}

func TestDecodeResamples(t *testing.T) {
	path := filepath.Join(t.TempDir(), "A4.wav")
	writeWAV(t, path, 8000, 1, make([]int, 800))

	f, _ := os.Open(path)
	defer f.Close()
	s, err := DecodeWAV(f, 69, 16000)

	assert.NoError(t, err)
	assert.Equal(t, 1600, s.Frames())
}

func TestDecodeGarbage(t *testing.T) {
	_, err := DecodeWAV(bytes.NewReader([]byte("not riff at all")), 60, 8000)
	assert.Equal(t, ErrInvalidWAV, err)
}

func TestResample(t *testing.T) {
	assert := assert.New(t)
	in := []float32{0, 1, 0, -1}
	assert.Equal(in, Resample(in, 100, 100))

	up := Resample(in, 100, 200)
	assert.Len(up, 8)
	assert.InDelta(0.5, up[1], 1e-6)
	assert.InDelta(1.0, up[2], 1e-6)

	down := Resample(in, 200, 100)
	assert.Equal([]float32{0, 0}, down)
}

func TestLoadSkipsMissingAndBrokenFiles(t *testing.T) {
	dir := t.TempDir()
	writeWAV(t, filepath.Join(dir, "C4.wav"), 8000, 1, []int{1000, 2000})
	writeWAV(t, filepath.Join(dir, "E4.wav"), 8000, 1, []int{3000})
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "G4.wav"), []byte("junk"), 0644))

	files := model.PitchToSamplePath{60: "C4.wav", 62: "D4.wav", 64: "E4.wav", 67: "G4.wav"}
	bank, err := Load(context.Background(), assets.Dir(dir), files, 8000, logger.Discard())

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(2, bank.Len())
	assert.Equal([]uint8{60, 64}, bank.Pitches())

	_, ok := bank.Lookup(62)
	assert.False(ok)
	s, ok := bank.Lookup(64)
	assert.True(ok)
	assert.Equal(1, s.Frames())
}

func TestLoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Load(ctx, assets.Dir(t.TempDir()), model.PitchToSamplePath{60: "C4.wav"}, 8000, logger.Discard())
	assert.Equal(t, context.Canceled, err)
}

func TestSynthesizeRejectsBadSoundFont(t *testing.T) {
	_, err := Synthesize(bytes.NewReader([]byte("nope")), []uint8{60}, 8000, 0.5, 0.5)
	assert.Error(t, err)
}

type fakeSynth struct {
	calls []string
	held  bool
}

func (f *fakeSynth) NoteOn(channel, key, velocity int32) {
	f.calls = append(f.calls, fmt.Sprintf("on %v %v", key, velocity))
	f.held = true
}

func (f *fakeSynth) NoteOff(channel, key int32) {
	f.calls = append(f.calls, fmt.Sprintf("off %v", key))
	f.held = false
}

// held keys render at 0.5, released ones ring at 0.25
func (f *fakeSynth) Render(left, right []float32) {
	level := float32(0.25)
	if f.held {
		level = 0.5
	}
	for i := range left {
		left[i] = level
		right[i] = -level
	}
}

func TestSynthesizeHoldsThenRings(t *testing.T) {
	var synths []*fakeSynth
	orig := newSynthesizer
	defer func() { newSynthesizer = orig }()
	newSynthesizer = func(sf io.Reader, sampleRate int) (func() (synthesizer, error), error) {
		return func() (synthesizer, error) {
			f := &fakeSynth{}
			synths = append(synths, f)
			return f, nil
		}, nil
	}

	// 80 hold frames and 40 tail frames, neither a whole number of blocks
	bank, err := Synthesize(bytes.NewReader(nil), []uint8{60, 64}, 8000, 0.01, 0.005)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal([]uint8{60, 64}, bank.Pitches())
	assert.Len(synths, 2)
	assert.Equal([]string{"on 60 127", "off 60"}, synths[0].calls)

	s, _ := bank.Lookup(64)
	assert.Equal(8000, s.SampleRate)
	assert.Equal(120, s.Frames())
	assert.Equal(float32(0.5), s.Left[79])
	assert.Equal(float32(0.25), s.Left[80])
	assert.Equal(float32(-0.25), s.Right[119])
}

func TestNewBankIgnoresNil(t *testing.T) {
	b := NewBank([]*model.Sample{nil, {Pitch: 60}})
	assert.Equal(t, 1, b.Len())
}
