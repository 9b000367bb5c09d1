package constants

import (
	"math"
	"os"
	"strconv"
)

const (
	DefaultMicrosecondsPerQuarterNote = 500000
	DefaultLeadIn                     = 0.1
	DefaultSampleRate                 = 44100

	// A0..C8, an 88 key piano
	DefaultKeyLow  = 21
	DefaultKeyHigh = 108
)

func getString(name string, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func getInt(name string, fallback int) int {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		panic(name + " is not an integer: " + err.Error())
	}
	return n
}

func getFloat(name string, fallback float64) float64 {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		panic(name + " is not a number: " + err.Error())
	}
	return f
}

// GetMicrosecondsPerQuarterNote is the fixed tempo for the whole piece.
func GetMicrosecondsPerQuarterNote() uint32 {
	mpq := getInt("TEMPO_MPQ", DefaultMicrosecondsPerQuarterNote)
	if mpq <= 0 || int64(mpq) > math.MaxUint32 {
		panic("TEMPO_MPQ must be a positive number of microseconds")
	}
	return uint32(mpq)
}

func GetLeadIn() float64 {
	return getFloat("LEAD_IN", DefaultLeadIn)
}

func GetSampleRate() int {
	return getInt("SAMPLE_RATE", DefaultSampleRate)
}

func GetSamplesDir() string {
	return getString("SAMPLES_PATH", "./notes")
}

// GetSoundFontPath returns "" when samples should be read from disk instead.
func GetSoundFontPath() string {
	return os.Getenv("SOUNDFONT_PATH")
}

func GetS3Bucket() string {
	return os.Getenv("S3_BUCKET")
}

func GetS3Prefix() string {
	return getString("S3_PREFIX", "notes")
}

func GetS3Endpoint() string {
	return os.Getenv("S3_ENDPOINT")
}

func GetAWSRegion() string {
	return getString("AWS_REGION", "us-east-1")
}

func GetAddr() string {
	return getString("ADDR", ":8080")
}

func GetKeyRange() (uint8, uint8) {
	low := getInt("KEY_LOW", DefaultKeyLow)
	high := getInt("KEY_HIGH", DefaultKeyHigh)
	if low < 0 || high > 127 || low > high {
		panic("KEY_LOW / KEY_HIGH must satisfy 0 <= low <= high <= 127")
	}
	return uint8(low), uint8(high)
}
