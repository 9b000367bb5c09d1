package file

import (
	"github.com/jsphweid/keyplayer/model"
)

// CreateSampleFileMap names one sample file per key, after the key's note
// name, e.g. C4.wav or Db4.wav.
func CreateSampleFileMap(keys []model.Key, ext string) model.PitchToSamplePath {
	res := make(model.PitchToSamplePath)
	for _, k := range keys {
		res[k.Pitch] = k.Name + ext
	}
	return res
}

// Only keeps the entries for the given pitches.
func Only(m model.PitchToSamplePath, pitches []uint8) model.PitchToSamplePath {
	res := make(model.PitchToSamplePath)
	for _, p := range pitches {
		if v, ok := m[p]; ok {
			res[p] = v
		}
	}
	return res
}
