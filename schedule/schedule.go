package schedule

import (
	"github.com/jsphweid/keyplayer/constants"
	"github.com/jsphweid/keyplayer/logger"
	"github.com/jsphweid/keyplayer/model"
)

// DefaultLeadIn gives the audio device time to fill its first buffers
// before the first note is due.
const DefaultLeadIn = constants.DefaultLeadIn

// Sink is the audio output. Times are absolute seconds on the sink's clock.
type Sink interface {
	ScheduleStart(s *model.Sample, at, gain float64) (model.Voice, error)
	ScheduleStop(v model.Voice, at float64) error
}

// SampleProvider returns the playable audio for a pitch, if there is one.
type SampleProvider func(pitch uint8) (*model.Sample, bool)

type Result struct {
	Scheduled int
	// no sample for the pitch
	Skipped int
	// rejected by the sink
	Failed int
	Voices []model.Voice
}

type Scheduler struct {
	leadIn   float64
	truncate bool
	log      *logger.Logger
}

type Option func(*Scheduler)

func WithLeadIn(seconds float64) Option {
	return func(s *Scheduler) {
		s.leadIn = seconds
	}
}

// WithTruncate also stops every voice at its note's end time, for samples
// that are longer than the notes they play.
func WithTruncate(truncate bool) Option {
	return func(s *Scheduler) {
		s.truncate = truncate
	}
}

func WithLogger(l *logger.Logger) Option {
	return func(s *Scheduler) {
		s.log = l
	}
}

func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		leadIn: DefaultLeadIn,
		log:    logger.Get(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scheduler) LeadIn() float64 {
	return s.leadIn
}

// Schedule issues a start for every playable note in one pass, at
// ref + lead-in + the note's start time. It never waits: the sink's clock
// decides when each voice actually sounds. A note without a sample, or one
// the sink rejects, is skipped without affecting the rest.
//
// Calling Schedule again while an earlier run is still sounding layers the
// two runs on top of each other.
func (s *Scheduler) Schedule(ref float64, notes []model.NoteAction, samples SampleProvider, sink Sink) Result {
	var res Result
	beginning := ref + s.leadIn

	for _, n := range notes {
		sample, ok := samples(n.Pitch)
		if !ok || sample == nil {
			res.Skipped++
			continue
		}

		voice, err := sink.ScheduleStart(sample, beginning+n.StartTime, n.Gain)
		if err != nil {
			s.log.Warn("could not start pitch %v at %.3fs: %v", n.Pitch, n.StartTime, err)
			res.Failed++
			continue
		}
		res.Voices = append(res.Voices, voice)
		res.Scheduled++

		if s.truncate {
			if err := sink.ScheduleStop(voice, beginning+n.EndTime); err != nil {
				s.log.Warn("could not stop pitch %v at %.3fs: %v", n.Pitch, n.EndTime, err)
			}
		}
	}

	s.log.Debug("scheduled %v notes, skipped %v, failed %v", res.Scheduled, res.Skipped, res.Failed)
	return res
}

// Cancel stops voices at the given clock time. It returns how many the sink
// accepted.
func Cancel(sink Sink, voices []model.Voice, at float64) int {
	var stopped int
	for _, v := range voices {
		if err := sink.ScheduleStop(v, at); err == nil {
			stopped++
		}
	}
	return stopped
}

// MapProvider adapts a plain map to a SampleProvider.
func MapProvider(m map[uint8]*model.Sample) SampleProvider {
	return func(pitch uint8) (*model.Sample, bool) {
		s, ok := m[pitch]
		return s, ok
	}
}
