package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/jsphweid/keyplayer/logger"
	"github.com/jsphweid/keyplayer/mixer"
	"github.com/jsphweid/keyplayer/note"
	"github.com/jsphweid/keyplayer/tui"
	"github.com/spf13/cobra"
)

var noUI bool

var startAudio = func(m *mixer.Mixer) (io.Closer, error) {
	return mixer.Start(m, mixer.DefaultBufferSize)
}

func init() {
	playCmd.Flags().BoolVar(&noUI, "no-ui", false, "play without drawing the keyboard")
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play <file.mid>",
	Short: "Plays a MIDI file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return play(cmd.Context(), args[0])
	},
}

func play(ctx context.Context, path string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	_, notes, err := loadNotes(path)
	if err != nil {
		return err
	}
	bank, err := loadBank(ctx, note.Pitches(notes))
	if err != nil {
		return err
	}

	m := mixer.New(sampleRate)
	// fail before drawing anything if there is no audio device
	out, err := startAudio(m)
	if err != nil {
		return err
	}

	s := newScheduler()
	ref := m.CurrentTime()
	res := s.Schedule(ref, notes, bank.Lookup, m)
	logger.Get().Info("playing %v notes, %v without samples", res.Scheduled, res.Skipped)

	span := note.Span(notes)
	if noUI {
		wait := time.Duration((s.LeadIn() + span + 1) * float64(time.Second))
		select {
		case <-time.After(wait):
		case <-ctx.Done():
		}
	} else {
		model := tui.NewModel(filepath.Base(path), keyLayout(), notes, m, ref+s.LeadIn(), span)
		if err := tui.Run(model); err != nil {
			out.Close()
			return err
		}
	}
	return out.Close()
}
