package cmd

import (
	"context"
	"os"

	"github.com/jsphweid/keyplayer/assets"
	"github.com/jsphweid/keyplayer/constants"
	"github.com/jsphweid/keyplayer/file"
	"github.com/jsphweid/keyplayer/keyboard"
	"github.com/jsphweid/keyplayer/logger"
	"github.com/jsphweid/keyplayer/midi"
	"github.com/jsphweid/keyplayer/model"
	"github.com/jsphweid/keyplayer/note"
	"github.com/jsphweid/keyplayer/sample"
	"github.com/jsphweid/keyplayer/schedule"
	"github.com/pkg/errors"
)

// how long synthesized samples hold and ring
const (
	synthHold = 1.5
	synthTail = 1.0
)

func keyLayout() []model.Key {
	low, high := constants.GetKeyRange()
	return keyboard.Layout(low, high)
}

func loadNotes(path string) (model.Composition, []model.NoteAction, error) {
	c, err := midi.LoadFile(path)
	if err != nil {
		return c, nil, errors.Wrapf(err, "loading %v", path)
	}
	return c, note.ResolveComposition(c, tempo), nil
}

func sampleSource() (assets.Source, error) {
	if bucket == "" {
		return assets.Dir(samplesDir), nil
	}
	return assets.NewS3(bucket, constants.GetS3Prefix(), constants.GetAWSRegion(), constants.GetS3Endpoint())
}

// loadBank fetches samples for just the pitches that will be played.
func loadBank(ctx context.Context, pitches []uint8) (*sample.Bank, error) {
	log := logger.Get()
	if soundFont != "" {
		f, err := os.Open(soundFont)
		if err != nil {
			return nil, errors.Wrap(err, "opening soundfont")
		}
		defer f.Close()
		log.Info("rendering %v samples from %v", len(pitches), soundFont)
		return sample.Synthesize(f, pitches, sampleRate, synthHold, synthTail)
	}

	src, err := sampleSource()
	if err != nil {
		return nil, err
	}
	files := file.Only(file.CreateSampleFileMap(keyLayout(), ".wav"), pitches)
	return sample.Load(ctx, src, files, sampleRate, log)
}

func newScheduler() *schedule.Scheduler {
	return schedule.New(
		schedule.WithLeadIn(leadIn),
		schedule.WithTruncate(truncate),
		schedule.WithLogger(logger.Get()),
	)
}
