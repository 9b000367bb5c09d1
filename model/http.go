package model

type ResolveResponse struct {
	TicksPerQuarterNote uint16       `json:"ticks_per_quarter_note"`
	NumNotes            int          `json:"num_notes"`
	Length              float64      `json:"length"`
	Notes               []NoteAction `json:"notes"`
}

type KeyboardResponse struct {
	Keys []Key `json:"keys"`
}

type PlayResponse struct {
	NumNotes int     `json:"num_notes"`
	Length   float64 `json:"length"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
