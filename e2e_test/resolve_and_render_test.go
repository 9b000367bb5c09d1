//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/jsphweid/keyplayer/assets"
	"github.com/jsphweid/keyplayer/cmd"
	"github.com/jsphweid/keyplayer/file"
	"github.com/jsphweid/keyplayer/keyboard"
	"github.com/jsphweid/keyplayer/logger"
	"github.com/jsphweid/keyplayer/midi"
	"github.com/jsphweid/keyplayer/midi/miditest"
	"github.com/jsphweid/keyplayer/mixer"
	"github.com/jsphweid/keyplayer/model"
	"github.com/jsphweid/keyplayer/note"
	"github.com/jsphweid/keyplayer/sample"
	"github.com/jsphweid/keyplayer/schedule"
	"github.com/stretchr/testify/assert"
)

const rate = 8000

func writeTone(t *testing.T, path string, frames int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	data := make([]int, frames)
	for i := range data {
		data[i] = 16384
	}
	enc := wav.NewEncoder(f, rate, 16, 1, 1)
	buf := &audio.IntBuffer{Format: &audio.Format{NumChannels: 1, SampleRate: rate}, Data: data, SourceBitDepth: 16}
	if err := enc.Write(buf); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestResolveOverHTTP(t *testing.T) {
	srv := cmd.NewServer(500000, keyboard.Layout(21, 108), nil, 10*time.Millisecond, logger.Discard())
	req := httptest.NewRequest(http.MethodPost, "/resolve", bytes.NewReader(miditest.Scenario(t)))
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	resp := w.Result()
	respBody, _ := io.ReadAll(resp.Body)

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)

	var resolved model.ResolveResponse
	if err := json.Unmarshal(respBody, &resolved); err != nil {
		panic(err.Error())
	}
	assert.Equal(model.ResolveResponse{
		TicksPerQuarterNote: 480,
		NumNotes:            2,
		Length:              0.75,
		Notes: []model.NoteAction{
			{Pitch: 60, Gain: note.Gain(100), StartTime: 0, EndTime: 0.5, Duration: 0.5},
			{Pitch: 64, Gain: note.Gain(90), StartTime: 0.5, EndTime: 0.75, Duration: 0.25},
		},
	}, resolved)
}

func TestFileToWAV(t *testing.T) {
	dir := t.TempDir()
	midiPath := filepath.Join(dir, "scenario.mid")
	assert.NoError(t, os.WriteFile(midiPath, miditest.Scenario(t), 0644))

	samplesDir := filepath.Join(dir, "notes")
	assert.NoError(t, os.Mkdir(samplesDir, 0755))
	// E4 is left out on purpose so its note is skipped
	writeTone(t, filepath.Join(samplesDir, "C4.wav"), rate/10)

	c, err := midi.LoadFile(midiPath)
	assert.NoError(t, err)
	notes := note.ResolveComposition(c, 500000)

	files := file.Only(file.CreateSampleFileMap(keyboard.Layout(21, 108), ".wav"), note.Pitches(notes))
	bank, err := sample.Load(context.Background(), assets.Dir(samplesDir), files, rate, logger.Discard())
	assert.NoError(t, err)

	m := mixer.New(rate)
	res := schedule.New(schedule.WithLogger(logger.Discard())).Schedule(m.CurrentTime(), notes, bank.Lookup, m)
	left, right := m.Render(note.Span(notes) + schedule.DefaultLeadIn)

	out := filepath.Join(dir, "out.wav")
	f, err := os.Create(out)
	assert.NoError(t, err)
	assert.NoError(t, mixer.WriteWAV(f, left, right, rate))
	f.Close()

	assert := assert.New(t)
	assert.Equal(1, res.Scheduled)
	assert.Equal(1, res.Skipped)

	in, err := os.Open(out)
	assert.NoError(err)
	defer in.Close()
	dec := wav.NewDecoder(in)
	assert.True(dec.IsValidFile())
	buf, err := dec.FullPCMBuffer()
	assert.NoError(err)
	assert.Equal(2*len(left), len(buf.Data))

	leadIn := int(schedule.DefaultLeadIn * rate)
	assert.Equal(0, buf.Data[2*(leadIn-1)])
	assert.NotEqual(0, buf.Data[2*leadIn])
}
