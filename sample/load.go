package sample

import (
	"bytes"
	"context"
	"runtime"
	"sync"

	"github.com/jsphweid/keyplayer/assets"
	"github.com/jsphweid/keyplayer/logger"
	"github.com/jsphweid/keyplayer/model"
	"github.com/jsphweid/keyplayer/util"
	"github.com/remeh/sizedwaitgroup"
)

// Load fetches one wav per pitch from src, several at a time. A pitch whose
// file is missing or unreadable is left out of the bank and logged; only a
// cancelled ctx fails the whole load.
func Load(ctx context.Context, src assets.Source, files model.PitchToSamplePath, sampleRate int, log *logger.Logger) (*Bank, error) {
	var mu sync.Mutex
	var loaded []*model.Sample

	wg := sizedwaitgroup.New(runtime.NumCPU())
	for _, pitch := range util.SortedKeys(files) {
		if ctx.Err() != nil {
			break
		}
		wg.Add()
		go func(pitch uint8, name string) {
			defer wg.Done()
			s, err := loadOne(ctx, src, pitch, name, sampleRate)
			if err != nil {
				log.With("pitch", pitch).Warn("skipping %v: %v", name, err)
				return
			}
			mu.Lock()
			loaded = append(loaded, s)
			mu.Unlock()
		}(pitch, files[pitch])
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log.Info("loaded %v of %v samples", len(loaded), len(files))
	return NewBank(loaded), nil
}

func loadOne(ctx context.Context, src assets.Source, pitch uint8, name string, sampleRate int) (*model.Sample, error) {
	data, err := assets.ReadAll(ctx, src, name)
	if err != nil {
		return nil, err
	}
	return DecodeWAV(bytes.NewReader(data), pitch, sampleRate)
}
