package cmd

import (
	"context"

	"github.com/jsphweid/keyplayer/constants"
	"github.com/spf13/cobra"
)

var (
	tempo      uint32
	leadIn     float64
	sampleRate int
	samplesDir string
	soundFont  string
	bucket     string
	truncate   bool
)

var rootCmd = &cobra.Command{
	Use:   "keyplayer",
	Short: "Plays MIDI files on a virtual keyboard",
	Long: `Plays single track MIDI files on a virtual keyboard, one sample per key.

Samples come from a directory of wav files named after their notes (C4.wav,
Db4.wav, ...), from the same layout in an S3 bucket, or are rendered from a
SoundFont.`,
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.Uint32Var(&tempo, "tempo", constants.GetMicrosecondsPerQuarterNote(), "microseconds per quarter note")
	flags.Float64Var(&leadIn, "lead-in", constants.GetLeadIn(), "seconds between scheduling and the first note")
	flags.IntVar(&sampleRate, "sample-rate", constants.GetSampleRate(), "output sample rate")
	flags.StringVar(&samplesDir, "samples", constants.GetSamplesDir(), "directory of per note wav samples")
	flags.StringVar(&soundFont, "soundfont", constants.GetSoundFontPath(), "render samples from this .sf2 instead")
	flags.StringVar(&bucket, "bucket", constants.GetS3Bucket(), "fetch samples from this S3 bucket instead")
	flags.BoolVar(&truncate, "truncate", false, "cut every sample off at the end of its note")
}

func Execute() {
	cobra.CheckErr(rootCmd.ExecuteContext(context.Background()))
}
