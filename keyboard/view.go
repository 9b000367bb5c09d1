package keyboard

import "github.com/jsphweid/keyplayer/model"

// View is anything that can show a key going down and coming back up.
type View interface {
	Press(pitch uint8)
	Release(pitch uint8)
}

// PressedAt returns the pitches sounding at time t.
func PressedAt(notes []model.NoteAction, t float64) map[uint8]bool {
	res := make(map[uint8]bool)
	for _, n := range notes {
		if n.StartTime > t {
			// notes are ordered by start time
			break
		}
		if t < n.StartTime+n.Duration {
			res[n.Pitch] = true
		}
	}
	return res
}

// Follower keeps a View in step with a piece as its clock moves forward.
type Follower struct {
	notes   []model.NoteAction
	view    View
	pressed map[uint8]bool
}

func NewFollower(notes []model.NoteAction, view View) *Follower {
	return &Follower{notes: notes, view: view, pressed: make(map[uint8]bool)}
}

// Update presses and releases whatever changed since the previous call.
func (f *Follower) Update(t float64) {
	now := PressedAt(f.notes, t)
	for p := range f.pressed {
		if !now[p] {
			f.view.Release(p)
		}
	}
	for p := range now {
		if !f.pressed[p] {
			f.view.Press(p)
		}
	}
	f.pressed = now
}

func (f *Follower) Pressed() map[uint8]bool {
	return f.pressed
}
