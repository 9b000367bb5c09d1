package note

import (
	"math"

	"github.com/jsphweid/keyplayer/model"
	"github.com/jsphweid/keyplayer/util"
)

type kind int

const (
	ignored kind = iota
	on
	off
)

// a note-on still waiting for its note-off
type openNote struct {
	slot      int
	startTime float64
	gain      float64
}

// Gain maps a raw velocity to loudness, squared to follow perceived volume.
func Gain(velocity uint8) float64 {
	return math.Pow(float64(velocity)/127, 2)
}

func TicksToSeconds(ticks uint64, ticksPerQuarterNote, microsecondsPerQuarterNote uint32) float64 {
	return float64(ticks) * float64(microsecondsPerQuarterNote) / 1e6 / float64(ticksPerQuarterNote)
}

func classify(e model.DecodedEvent) kind {
	velocity := e.Data[1]
	switch {
	case e.StatusType == model.NoteOnStatus && velocity > 0:
		return on
	// a zero velocity note-on is the conventional note-off
	case e.StatusType == model.NoteOffStatus, e.StatusType == model.NoteOnStatus:
		return off
	}
	return ignored
}

// Resolve pairs the note-on and note-off events of a single track into
// absolutely timed note actions, in one forward pass.
//
// Each note-off closes the most recent open note-on of the same pitch, so a
// pitch retriggered before its release pairs last-in-first-out. Note-offs
// with nothing open and note-ons never closed are dropped. The result is
// ordered by start time.
//
// Only note-off (status 8) and note-on (status 9) events open or close notes.
// A zero value on any other status, such as a sustain pedal release, is
// ignored rather than read as a note-off.
func Resolve(events []model.DecodedEvent, ticksPerQuarterNote, microsecondsPerQuarterNote uint32) []model.NoteAction {
	if ticksPerQuarterNote == 0 || microsecondsPerQuarterNote == 0 {
		return nil
	}

	var absTicks uint64
	var open [128][]openNote

	// one slot per note-on, in arrival order, filled when its note-off lands
	var slots []*model.NoteAction

	for _, event := range events {
		absTicks += uint64(event.DeltaTime)
		if len(event.Data) != 2 {
			continue
		}
		k := classify(event)
		if k == ignored {
			continue
		}

		pitch := event.Data[0] & 0x7F
		absTime := TicksToSeconds(absTicks, ticksPerQuarterNote, microsecondsPerQuarterNote)

		if k == on {
			open[pitch] = append(open[pitch], openNote{
				slot:      len(slots),
				startTime: absTime,
				gain:      Gain(event.Data[1]),
			})
			slots = append(slots, nil)
			continue
		}

		stack := open[pitch]
		if len(stack) == 0 {
			continue
		}
		started := stack[len(stack)-1]
		open[pitch] = stack[:len(stack)-1]

		slots[started.slot] = &model.NoteAction{
			Pitch:     pitch,
			Gain:      started.gain,
			StartTime: started.startTime,
			EndTime:   absTime,
			Duration:  absTime - started.startTime,
		}
	}

	res := make([]model.NoteAction, 0, len(slots))
	for _, action := range slots {
		if action != nil {
			res = append(res, *action)
		}
	}
	return res
}

// ResolveComposition resolves c at a fixed tempo.
func ResolveComposition(c model.Composition, microsecondsPerQuarterNote uint32) []model.NoteAction {
	return Resolve(c.Events, uint32(c.TimeDivision), microsecondsPerQuarterNote)
}

// Span is the time the last note stops sounding.
func Span(notes []model.NoteAction) float64 {
	var end float64
	for _, n := range notes {
		end = math.Max(end, n.EndTime)
	}
	return end
}

// Pitches returns the distinct pitches in notes, lowest first.
func Pitches(notes []model.NoteAction) []uint8 {
	seen := make(map[uint8]bool)
	for _, n := range notes {
		seen[n.Pitch] = true
	}
	return util.SortedKeys(seen)
}
