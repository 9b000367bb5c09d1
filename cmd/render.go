package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/jsphweid/keyplayer/mixer"
	"github.com/jsphweid/keyplayer/note"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// seconds of silence rendered after the last note ends
var renderTail float64

func init() {
	renderCmd.Flags().Float64Var(&renderTail, "tail", 1.0, "seconds to keep rendering after the last note")
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render <file.mid> <out.wav>",
	Short: "Renders a MIDI file to a wav file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return render(cmd.Context(), args[0], args[1])
	},
}

func render(ctx context.Context, in, out string) error {
	_, notes, err := loadNotes(in)
	if err != nil {
		return err
	}
	bank, err := loadBank(ctx, note.Pitches(notes))
	if err != nil {
		return err
	}

	m := mixer.New(sampleRate)
	s := newScheduler()
	ref := m.CurrentTime()
	res := s.Schedule(ref, notes, bank.Lookup, m)
	left, right := m.Render(ref + s.LeadIn() + note.Span(notes) + renderTail)

	f, err := os.Create(out)
	if err != nil {
		return errors.Wrap(err, "creating output")
	}
	defer f.Close()
	if err := mixer.WriteWAV(f, left, right, sampleRate); err != nil {
		return err
	}

	info, err := f.Stat()
	if err != nil {
		return err
	}
	fmt.Printf("wrote %v (%v), %v notes played, %v without samples\n", out, humanize.Bytes(uint64(info.Size())), res.Scheduled, res.Skipped)
	return nil
}
