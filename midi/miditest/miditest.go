// Package miditest builds small Standard MIDI Files for tests.
package miditest

import (
	"bytes"
	"testing"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

type Event struct {
	Delta    uint32
	On       bool
	Key      uint8
	Velocity uint8
}

func On(delta uint32, key, velocity uint8) Event {
	return Event{Delta: delta, On: true, Key: key, Velocity: velocity}
}

func Off(delta uint32, key, velocity uint8) Event {
	return Event{Delta: delta, Key: key, Velocity: velocity}
}

func Track(events []Event) smf.Track {
	var tr smf.Track
	for _, e := range events {
		if e.On {
			tr.Add(e.Delta, midi.NoteOn(0, e.Key, e.Velocity))
		} else {
			tr.Add(e.Delta, midi.NoteOffVelocity(0, e.Key, e.Velocity))
		}
	}
	tr.Close(0)
	return tr
}

// Bytes encodes the given tracks as an SMF with ppq ticks per quarter note.
func Bytes(t testing.TB, ppq uint16, tracks ...smf.Track) []byte {
	t.Helper()
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ppq)
	for _, tr := range tracks {
		if err := s.Add(tr); err != nil {
			t.Fatalf("adding track: %v", err)
		}
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		t.Fatalf("writing midi: %v", err)
	}
	return buf.Bytes()
}

// Scenario is the two note example used across the test suites:
// C4 for a quarter note, then E4 for an eighth, at 480 ticks per quarter.
func Scenario(t testing.TB) []byte {
	return Bytes(t, 480, Track([]Event{
		On(0, 60, 100),
		On(480, 60, 0),
		On(0, 64, 90),
		Off(240, 64, 64),
	}))
}
