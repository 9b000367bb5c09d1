package midi

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/jsphweid/keyplayer/model"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2/smf"
)

var (
	ErrNoTracks   = errors.New("midi file has no tracks")
	ErrTimeFormat = errors.New("midi file does not use metric ticks")
)

func ReadMidiFile(filepath string) (*smf.SMF, error) {
	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, errors.Wrap(err, "reading midi file")
	}
	return ReadMidi(bytes.NewReader(dat))
}

func ReadMidi(r io.Reader) (s *smf.SMF, e error) {
	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			s = nil
			e = errors.Errorf("parsing midi file panicked: %v", r)
		}
	}()

	res, err := smf.ReadFrom(r)
	if err != nil {
		return nil, errors.Wrap(err, "parsing midi file")
	}
	return res, nil
}

// Decode flattens the first track of s. Later tracks are ignored, the player
// only handles single track (type 0) files.
func Decode(s *smf.SMF) (model.Composition, error) {
	var c model.Composition
	if s == nil || len(s.Tracks) == 0 {
		return c, ErrNoTracks
	}
	ticks, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok || ticks == 0 {
		return c, errors.Wrap(ErrTimeFormat, fmt.Sprintf("got %v", s.TimeFormat))
	}

	c.TimeDivision = uint16(ticks)
	c.Events = make([]model.DecodedEvent, 0, len(s.Tracks[0]))
	for _, evt := range s.Tracks[0] {
		c.Events = append(c.Events, decodeEvent(evt.Delta, []byte(evt.Message)))
	}
	return c, nil
}

func decodeEvent(delta uint32, raw []byte) model.DecodedEvent {
	e := model.DecodedEvent{DeltaTime: delta}
	if len(raw) == 0 {
		return e
	}
	status := raw[0]
	e.StatusType = status >> 4

	// channel messages only, meta (0xFF) and sysex (0xF0) keep no data
	if status >= 0x80 && status < 0xF0 {
		e.Data = append([]uint8(nil), raw[1:]...)
	}
	return e
}

func Load(r io.Reader) (model.Composition, error) {
	s, err := ReadMidi(r)
	if err != nil {
		return model.Composition{}, err
	}
	return Decode(s)
}

func LoadFile(path string) (model.Composition, error) {
	s, err := ReadMidiFile(path)
	if err != nil {
		return model.Composition{}, err
	}
	return Decode(s)
}
