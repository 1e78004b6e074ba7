package record

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/devendraBainda/hinglish-cold-calling-agent/internal/audio"
)

var (
	// ErrAlreadyRecording rejects Start while a capture is in flight.
	ErrAlreadyRecording = errors.New("a recording is already in progress")
	// ErrNoAudioCaptured means the capture ended with no voiced audio buffered.
	ErrNoAudioCaptured = errors.New("no audio was captured")
	// ErrTimeout means the caller gave up waiting for the background result.
	ErrTimeout = errors.New("timed out waiting for recognition result")
)

// State is the lifecycle position of one recording session.
type State int32

const (
	Idle State = iota
	Armed
	Capturing
	Stopped
	Completed
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Armed:
		return "armed"
	case Capturing:
		return "capturing"
	case Stopped:
		return "stopped"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Device is an audio input that delivers int16 mono frames.
type Device interface {
	Start() error
	Read() ([]int16, error)
	Stop() error
}

// Transcriber maps one WAV clip to text.
type Transcriber interface {
	Transcribe(ctx context.Context, wavAudio []byte, language string) (string, error)
}

// Result is the terminal outcome of a session: a transcript or an error.
type Result struct {
	Transcript string
	Err        error
}

// Options tune the capture worker.
type Options struct {
	// Calibration is the ambient-noise sampling window before buffering begins.
	Calibration time.Duration
	// NoAudioCeiling fails the session when no voiced audio arrives in time.
	NoAudioCeiling time.Duration
	// JoinTimeout bounds how long Stop waits for the worker to exit.
	JoinTimeout time.Duration
	// VoiceRatio is the energy multiple over the noise floor that counts as speech.
	VoiceRatio float64
	// AutoStop ends buffering after SilenceWindow of quiet once speech was heard.
	AutoStop      bool
	SilenceWindow time.Duration
	SampleRate    int
}

func (o *Options) withDefaults() {
	if o.Calibration <= 0 {
		o.Calibration = 500 * time.Millisecond
	}
	if o.NoAudioCeiling <= 0 {
		o.NoAudioCeiling = 10 * time.Second
	}
	if o.JoinTimeout <= 0 {
		o.JoinTimeout = time.Second
	}
	if o.VoiceRatio <= 0 {
		o.VoiceRatio = 2.22
	}
	if o.SilenceWindow <= 0 {
		o.SilenceWindow = time.Second
	}
	if o.SampleRate <= 0 {
		o.SampleRate = audio.SampleRate
	}
}

// Session owns one capture-and-transcribe operation. Capture and the
// synchronous transcription call both run on a background worker; the owner
// drives it with Start/Stop and polls for the single-resolution result.
// A Session is single-use: create one per conversation turn.
type Session struct {
	id       uuid.UUID
	dev      Device
	stt      Transcriber
	language string
	opts     Options

	mu     sync.Mutex
	state  State
	cached *Result

	stopOnce sync.Once
	stopCh   chan struct{}
	done     chan struct{}
	resultCh chan Result
}

func NewSession(dev Device, stt Transcriber, language string, opts Options) *Session {
	opts.withDefaults()
	return &Session{
		id:       uuid.New(),
		dev:      dev,
		stt:      stt,
		language: language,
		opts:     opts,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
		resultCh: make(chan Result, 1),
	}
}

// Start arms the session and spawns the capture worker. It returns
// ErrAlreadyRecording when a capture is already armed or in flight, and does
// not block on any audio operation.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	switch s.state {
	case Armed, Capturing:
		s.mu.Unlock()
		return ErrAlreadyRecording
	case Idle:
	default:
		s.mu.Unlock()
		return fmt.Errorf("session %s already finished (%s)", s.id, s.state)
	}
	s.state = Armed
	s.mu.Unlock()

	log.Printf("recording session %s armed", s.id)
	go s.run(ctx)
	return nil
}

// Stop signals the worker to end buffering and joins it with a bounded
// timeout. It is a no-op when nothing is recording, and a no-op while an
// auto-stop capture is in flight: there the silence detector owns the end of
// buffering. The join is best-effort: if the worker does not exit in time,
// Stop returns anyway and the worker resolves the result whenever it finishes.
func (s *Session) Stop() {
	s.mu.Lock()
	state := s.state
	s.mu.Unlock()
	if state == Idle {
		return
	}
	if s.opts.AutoStop && (state == Armed || state == Capturing) {
		return
	}

	s.stopOnce.Do(func() { close(s.stopCh) })
	select {
	case <-s.done:
	case <-time.After(s.opts.JoinTimeout):
		log.Printf("recording session %s: worker did not exit within %v", s.id, s.opts.JoinTimeout)
	}
}

// Poll returns the terminal result when available. It never blocks and is
// idempotent: once resolved, every call returns the same result.
func (s *Session) Poll() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cached != nil {
		return *s.cached, true
	}
	select {
	case r := <-s.resultCh:
		s.cached = &r
		return r, true
	default:
		return Result{}, false
	}
}

// State reports the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

func (s *Session) resolve(r Result) {
	if r.Err != nil {
		s.setState(Failed)
		log.Printf("recording session %s failed: %v", s.id, r.Err)
	} else {
		s.setState(Completed)
		log.Printf("recording session %s recognized: %s", s.id, r.Transcript)
	}
	s.resultCh <- r
}

func (s *Session) run(ctx context.Context) {
	defer close(s.done)

	if err := s.dev.Start(); err != nil {
		s.resolve(Result{Err: fmt.Errorf("failed to open input device: %w", err)})
		return
	}
	defer s.dev.Stop()

	noise, stopped := s.calibrate()
	s.setState(Capturing)
	if stopped {
		s.transcribe(ctx, nil, false)
		return
	}

	var samples []int16
	voiced := false
	started := time.Now()
	var lastVoice time.Time

	for {
		select {
		case <-s.stopCh:
			s.transcribe(ctx, samples, voiced)
			return
		case <-ctx.Done():
			s.resolve(Result{Err: ctx.Err()})
			return
		default:
		}

		frame, err := s.dev.Read()
		if err != nil {
			s.resolve(Result{Err: fmt.Errorf("failed to read audio: %w", err)})
			return
		}
		samples = append(samples, frame...)

		if audio.Amplitude(frame) > noise*s.opts.VoiceRatio {
			voiced = true
			lastVoice = time.Now()
		}
		if !voiced && time.Since(started) > s.opts.NoAudioCeiling {
			s.resolve(Result{Err: ErrNoAudioCaptured})
			return
		}
		if s.opts.AutoStop && voiced && time.Since(lastVoice) > s.opts.SilenceWindow {
			s.transcribe(ctx, samples, voiced)
			return
		}
	}
}

// calibrate samples the ambient noise floor before buffering begins. The
// calibration frames are discarded. A read error here is left for the capture
// loop to surface.
func (s *Session) calibrate() (noise float64, stopped bool) {
	deadline := time.Now().Add(s.opts.Calibration)
	var total float64
	var n int
	for time.Now().Before(deadline) {
		select {
		case <-s.stopCh:
			return 0, true
		default:
		}
		frame, err := s.dev.Read()
		if err != nil {
			break
		}
		total += audio.Amplitude(frame)
		n++
	}
	if n == 0 {
		return 0, false
	}
	return total / float64(n), false
}

// transcribe closes the audio buffer and runs the recognition call on this
// worker, never on the owner.
func (s *Session) transcribe(ctx context.Context, samples []int16, voiced bool) {
	_ = s.dev.Stop()
	s.setState(Stopped)

	if !voiced || len(samples) == 0 {
		s.resolve(Result{Err: ErrNoAudioCaptured})
		return
	}

	wavAudio := audio.EncodeWAV(samples, s.opts.SampleRate)
	text, err := s.stt.Transcribe(ctx, wavAudio, s.language)
	if err != nil {
		s.resolve(Result{Err: err})
		return
	}
	s.resolve(Result{Transcript: text})
}
