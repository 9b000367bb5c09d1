package model

// Status nibbles of the channel messages the player cares about.
const (
	NoteOffStatus uint8 = 0x8
	NoteOnStatus  uint8 = 0x9
)

// DecodedEvent is one timed message of a decoded track.
type DecodedEvent struct {
	// ticks since the previous event
	DeltaTime  uint32
	StatusType uint8

	// NOTE: only channel messages carry data, meta and sysex events leave it empty
	Data []uint8
}

type Composition struct {
	// ticks per quarter note
	TimeDivision uint16
	Events       []DecodedEvent
}

type NoteAction struct {
	Pitch     uint8   `json:"pitch"`
	Gain      float64 `json:"gain"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	Duration  float64 `json:"duration"`
}
