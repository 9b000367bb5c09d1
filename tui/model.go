package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jsphweid/keyplayer/keyboard"
	"github.com/jsphweid/keyplayer/model"
)

const (
	frameRate = 30
	keyHeight = 4
	// keep the window up while the last samples ring out
	tail = 1.0
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
)

// Clock is the playback clock the keyboard follows, in seconds.
type Clock interface {
	CurrentTime() float64
}

type keyState map[uint8]bool

func (k keyState) Press(pitch uint8)   { k[pitch] = true }
func (k keyState) Release(pitch uint8) { delete(k, pitch) }

type tickMsg time.Time

type Model struct {
	Title    string
	keys     []model.Key
	pressed  keyState
	follower *keyboard.Follower
	clock    Clock
	// clock time at which the piece starts
	begin    float64
	length   float64
	now      float64
	quitting bool
}

func NewModel(title string, keys []model.Key, notes []model.NoteAction, clock Clock, begin, length float64) Model {
	pressed := make(keyState)
	return Model{
		Title:    title,
		keys:     keys,
		pressed:  pressed,
		follower: keyboard.NewFollower(notes, pressed),
		clock:    clock,
		begin:    begin,
		length:   length,
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}
	case tickMsg:
		m.now = m.clock.CurrentTime() - m.begin
		m.follower.Update(m.now)
		if m.now > m.length+tail {
			m.quitting = true
			return m, tea.Quit
		}
		return m, tick()
	}
	return m, nil
}

func formatSeconds(s float64) string {
	if s < 0 {
		s = 0
	}
	return fmt.Sprintf("%d:%04.1f", int(s)/60, s-float64(int(s)/60*60))
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.Title))
	b.WriteString("\n\n")
	b.WriteString(keyboard.Render(m.keys, m.pressed, keyHeight))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s / %s", formatSeconds(m.now), formatSeconds(m.length)))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("q to quit"))
	return b.String()
}

// Run shows the keyboard until the piece ends or the user quits.
func Run(m Model) error {
	_, err := tea.NewProgram(m).Run()
	return err
}
