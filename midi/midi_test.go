package midi

import (
	"bytes"
	"testing"

	"github.com/jsphweid/keyplayer/midi/miditest"
	"github.com/jsphweid/keyplayer/model"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gitlab.com/gomidi/midi/v2/smf"
)

func TestLoadDecodesFirstTrack(t *testing.T) {
	c, err := Load(bytes.NewReader(miditest.Scenario(t)))

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(uint16(480), c.TimeDivision)

	// four notes, possibly followed by the end of track meta event
	assert.GreaterOrEqual(len(c.Events), 4)
	assert.Equal(model.DecodedEvent{DeltaTime: 0, StatusType: model.NoteOnStatus, Data: []uint8{60, 100}}, c.Events[0])
	assert.Equal(uint32(480), c.Events[1].DeltaTime)
	assert.Equal([]uint8{60, 0}, c.Events[1].Data)
	assert.Equal(model.DecodedEvent{DeltaTime: 240, StatusType: model.NoteOffStatus, Data: []uint8{64, 64}}, c.Events[3])

	for _, e := range c.Events[4:] {
		assert.Equal(uint8(0xF), e.StatusType)
		assert.Empty(e.Data)
	}
}

func TestLoadIgnoresLaterTracks(t *testing.T) {
	first := miditest.Track([]miditest.Event{miditest.On(0, 60, 100), miditest.Off(10, 60, 0)})
	second := miditest.Track([]miditest.Event{miditest.On(0, 72, 100), miditest.Off(10, 72, 0)})
	c, err := Load(bytes.NewReader(miditest.Bytes(t, 96, first, second)))

	assert := assert.New(t)
	assert.NoError(err)
	for _, e := range c.Events {
		if len(e.Data) == 2 {
			assert.Equal(uint8(60), e.Data[0])
		}
	}
}

func TestLoadGarbage(t *testing.T) {
	_, err := Load(bytes.NewReader([]byte("definitely not a midi file")))
	assert.Error(t, err)
}

func TestDecodeNoTracks(t *testing.T) {
	_, err := Decode(&smf.SMF{TimeFormat: smf.MetricTicks(480)})
	assert.Equal(t, ErrNoTracks, err)

	_, err = Decode(nil)
	assert.Equal(t, ErrNoTracks, err)
}

func TestDecodeRejectsSMPTE(t *testing.T) {
	s := &smf.SMF{TimeFormat: smf.SMPTE30(40), Tracks: []smf.Track{{}}}
	_, err := Decode(s)
	assert.Equal(t, ErrTimeFormat, errors.Cause(err))
}

func TestDecodeEventKeepsOnlyChannelData(t *testing.T) {
	cases := []struct {
		name string
		raw  []byte
		want model.DecodedEvent
	}{
		{"note on", []byte{0x93, 60, 100}, model.DecodedEvent{StatusType: 9, Data: []uint8{60, 100}}},
		{"note off", []byte{0x80, 60, 0}, model.DecodedEvent{StatusType: 8, Data: []uint8{60, 0}}},
		{"program change", []byte{0xC0, 5}, model.DecodedEvent{StatusType: 0xC, Data: []uint8{5}}},
		{"end of track", []byte{0xFF, 0x2F, 0x00}, model.DecodedEvent{StatusType: 0xF}},
		{"sysex", []byte{0xF0, 0x7E, 0xF7}, model.DecodedEvent{StatusType: 0xF}},
		{"empty", nil, model.DecodedEvent{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, decodeEvent(0, c.raw))
		})
	}
}
