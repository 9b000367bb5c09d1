package keyboard

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jsphweid/keyplayer/model"
)

var (
	whiteKey   = lipgloss.NewStyle().Background(lipgloss.Color("#F5F5F5"))
	blackKey   = lipgloss.NewStyle().Background(lipgloss.Color("#202020"))
	pressedKey = lipgloss.NewStyle().Background(lipgloss.Color("#E8A33D"))
	keyLabel   = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
)

func keyStyle(k model.Key, pressed bool) lipgloss.Style {
	switch {
	case pressed:
		return pressedKey
	case k.Black:
		return blackKey
	}
	return whiteKey
}

// labels puts each C's name under its key, overhanging to the right.
func labels(keys []model.Key) string {
	row := []byte(strings.Repeat(" ", len(keys)))
	for i, k := range keys {
		if k.Pitch%12 != 0 {
			continue
		}
		copy(row[i:], k.Name)
	}
	return string(row)
}

// Render draws one column per key, height rows tall, with pressed keys
// highlighted and the octaves labelled underneath.
func Render(keys []model.Key, pressed map[uint8]bool, height int) string {
	if len(keys) == 0 {
		return ""
	}
	if height < 1 {
		height = 1
	}
	cols := make([]string, 0, len(keys))
	for _, k := range keys {
		cell := keyStyle(k, pressed[k.Pitch]).Render(" ")
		cols = append(cols, strings.TrimSuffix(strings.Repeat(cell+"\n", height), "\n"))
	}
	board := lipgloss.JoinHorizontal(lipgloss.Top, cols...)
	return lipgloss.JoinVertical(lipgloss.Left, board, keyLabel.Render(labels(keys)))
}
