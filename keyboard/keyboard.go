package keyboard

import (
	"fmt"
	"strings"

	"github.com/jsphweid/keyplayer/model"
)

// Key geometry, in pixels.
const (
	WhiteKeyWidth   = 24.0
	WhiteKeyHeight  = 120.0
	BlackKeyWidth   = 14.0
	BlackKeyHeight  = 80.0
	BlackKeyOverlap = 7.0
	// spacing between neighbouring white keys
	GapFactor = 1.05
)

var noteNames = [12]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

// NoteName spells a pitch with flats, middle C is C4.
func NoteName(pitch uint8) string {
	return fmt.Sprintf("%v%v", noteNames[pitch%12], int(pitch)/12-1)
}

// IsBlack reports whether pitch sits on a black key. NOTE: "b" marks a flat.
func IsBlack(pitch uint8) bool {
	return strings.Contains(noteNames[pitch%12], "b")
}

// Layout places the keys from low to high. White keys sit on the baseline
// side by side, each black key straddles the white key to its left.
func Layout(low, high uint8) []model.Key {
	var keys []model.Key
	var numWhite int
	var lastWhiteX float64

	for p := int(low); p <= int(high); p++ {
		pitch := uint8(p)
		k := model.Key{Pitch: pitch, Name: NoteName(pitch)}
		if IsBlack(pitch) {
			k.Black = true
			k.Left = lastWhiteX + WhiteKeyWidth - BlackKeyOverlap
			k.Bottom = WhiteKeyHeight - BlackKeyHeight
			k.Width = BlackKeyWidth
			k.Height = BlackKeyHeight
		} else {
			lastWhiteX = float64(numWhite) * WhiteKeyWidth * GapFactor
			k.Left = lastWhiteX
			k.Width = WhiteKeyWidth
			k.Height = WhiteKeyHeight
			numWhite++
		}
		keys = append(keys, k)
	}
	return keys
}

// KeyMap indexes a layout by pitch.
func KeyMap(keys []model.Key) map[uint8]model.Key {
	res := make(map[uint8]model.Key, len(keys))
	for _, k := range keys {
		res[k.Pitch] = k
	}
	return res
}
