package cmd

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
	"github.com/jsphweid/keyplayer/keyboard"
	"github.com/jsphweid/keyplayer/note"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.mid>",
	Short: "Lists the notes of a MIDI file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inspect(args[0])
	},
}

func inspect(path string) error {
	c, notes, err := loadNotes(path)
	if err != nil {
		return err
	}
	span := note.Span(notes)
	length := time.Duration(span * float64(time.Second))

	fmt.Printf("%v: %v events, %v ticks per quarter note\n", path, humanize.Comma(int64(len(c.Events))), c.TimeDivision)
	fmt.Printf("%v notes over %v distinct keys, %v long\n", humanize.Comma(int64(len(notes))), len(note.Pitches(notes)), durafmt.Parse(length).LimitFirstN(2))
	fmt.Println()
	fmt.Printf("%-6v %-5v %9v %9v %9v\n", "note", "gain", "start", "end", "duration")
	for _, n := range notes {
		fmt.Printf("%-6v %5.3f %9.3f %9.3f %9.3f\n", keyboard.NoteName(n.Pitch), n.Gain, n.StartTime, n.EndTime, n.Duration)
	}
	return nil
}
