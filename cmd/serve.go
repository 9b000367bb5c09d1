package cmd

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/bep/debounce"
	"github.com/gorilla/mux"
	"github.com/jsphweid/keyplayer/constants"
	"github.com/jsphweid/keyplayer/logger"
	"github.com/jsphweid/keyplayer/midi"
	"github.com/jsphweid/keyplayer/mixer"
	"github.com/jsphweid/keyplayer/model"
	"github.com/jsphweid/keyplayer/note"
	"github.com/jsphweid/keyplayer/sample"
	"github.com/jsphweid/keyplayer/schedule"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

const (
	maxMidiSize  = 16 << 20
	requestBurst = 20
)

var (
	addr         string
	serveAudio   bool
	playDebounce time.Duration
)

func init() {
	serveCmd.Flags().StringVar(&addr, "addr", constants.GetAddr(), "listen address")
	serveCmd.Flags().BoolVar(&serveAudio, "audio", false, "play /play requests on this machine's speakers")
	serveCmd.Flags().DurationVar(&playDebounce, "debounce", 250*time.Millisecond, "collapse /play requests arriving closer together than this")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the keyboard and note API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

// Player plays resolved notes somewhere audible.
type Player interface {
	Play(notes []model.NoteAction)
}

// livePlayer schedules onto a mixer that streams to the speakers for as long
// as the server runs. Requests that overlap in time layer on top of each other.
type livePlayer struct {
	mixer     *mixer.Mixer
	scheduler *schedule.Scheduler
	bank      *sample.Bank
}

func (p *livePlayer) Play(notes []model.NoteAction) {
	p.scheduler.Schedule(p.mixer.CurrentTime(), notes, p.bank.Lookup, p.mixer)
}

type Server struct {
	log      *logger.Logger
	tempo    uint32
	keys     []model.Key
	player   Player
	debounce func(f func())
	limiter  *rate.Limiter
}

// NewServer builds the HTTP API. player may be nil, in which case /play
// answers 503.
func NewServer(tempo uint32, keys []model.Key, player Player, debounceInterval time.Duration, log *logger.Logger) *Server {
	return &Server{
		log:      log,
		tempo:    tempo,
		keys:     keys,
		player:   player,
		debounce: debounce.New(debounceInterval),
		limiter:  rate.NewLimiter(rate.Every(50*time.Millisecond), requestBurst),
	}
}

func (s *Server) Handler() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/resolve", s.HandleResolve).Methods("POST")
	router.HandleFunc("/play", s.HandlePlay).Methods("POST")
	router.HandleFunc("/keyboard", s.HandleKeyboard).Methods("GET")
	router.Use(s.throttle)
	return cors.Default().Handler(router)
}

func (s *Server) throttle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func (s *Server) readNotes(w http.ResponseWriter, r *http.Request) (model.Composition, []model.NoteAction, bool) {
	c, err := midi.Load(http.MaxBytesReader(w, r.Body, maxMidiSize))
	if err != nil {
		s.log.Info("rejecting midi upload: %v", err)
		writeError(w, http.StatusBadRequest, "could not read midi file: "+err.Error())
		return c, nil, false
	}
	return c, note.ResolveComposition(c, s.tempo), true
}

func (s *Server) HandleResolve(w http.ResponseWriter, r *http.Request) {
	c, notes, ok := s.readNotes(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, model.ResolveResponse{
		TicksPerQuarterNote: c.TimeDivision,
		NumNotes:            len(notes),
		Length:              note.Span(notes),
		Notes:               notes,
	})
}

func (s *Server) HandlePlay(w http.ResponseWriter, r *http.Request) {
	if s.player == nil {
		writeError(w, http.StatusServiceUnavailable, "this server has no audio output")
		return
	}
	_, notes, ok := s.readNotes(w, r)
	if !ok {
		return
	}
	// a burst of clicks plays once, with the last request's notes
	s.debounce(func() {
		s.player.Play(notes)
	})
	writeJSON(w, http.StatusAccepted, model.PlayResponse{NumNotes: len(notes), Length: note.Span(notes)})
}

func (s *Server) HandleKeyboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.KeyboardResponse{Keys: s.keys})
}

func serve(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	log := logger.Get()

	var player Player
	if serveAudio {
		keys := keyLayout()
		pitches := make([]uint8, 0, len(keys))
		for _, k := range keys {
			pitches = append(pitches, k.Pitch)
		}
		bank, err := loadBank(ctx, pitches)
		if err != nil {
			return err
		}
		m := mixer.New(sampleRate)
		out, err := mixer.Start(m, mixer.DefaultBufferSize)
		if err != nil {
			return err
		}
		defer out.Close()
		player = &livePlayer{mixer: m, scheduler: newScheduler(), bank: bank}
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: NewServer(tempo, keyLayout(), player, playDebounce, log).Handler(),
	}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdown)
	}()

	log.Info("listening on %v", addr)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}
