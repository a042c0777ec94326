// Package demo wraps the engine with the fake "AI processing" latency the interactive demo
// shows. Nothing in the engine depends on it.
package demo

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"veriportal-engine/internal/engine"
)

// RandomSource yields values in [0,1). The simulator serializes calls, so implementations need
// not be safe for concurrent use.
type RandomSource interface {
	Float64() float64
}

// Sleeper blocks for d or until ctx is done.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

type timerSleeper struct{}

func (timerSleeper) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Simulator delays each evaluation by a random duration in [MinDelay, MaxDelay).
type Simulator struct {
	engine   *engine.Engine
	mu       sync.Mutex // guards random
	random   RandomSource
	sleeper  Sleeper
	minDelay time.Duration
	maxDelay time.Duration
}

type Option func(*Simulator)

func WithRandomSource(r RandomSource) Option {
	return func(s *Simulator) { s.random = r }
}

func WithSleeper(sl Sleeper) Option {
	return func(s *Simulator) { s.sleeper = sl }
}

func WithDelayRange(min, max time.Duration) Option {
	return func(s *Simulator) {
		s.minDelay = min
		s.maxDelay = max
	}
}

func NewSimulator(e *engine.Engine, opts ...Option) *Simulator {
	s := &Simulator{
		engine:   e,
		random:   rand.New(rand.NewSource(time.Now().UnixNano())),
		sleeper:  timerSleeper{},
		minDelay: 800 * time.Millisecond,
		maxDelay: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.maxDelay < s.minDelay {
		s.maxDelay = s.minDelay
	}
	return s
}

// Delay returns the next simulated processing time. It is safe for concurrent use.
func (s *Simulator) Delay() time.Duration {
	s.mu.Lock()
	f := s.random.Float64()
	s.mu.Unlock()
	span := float64(s.maxDelay - s.minDelay)
	return s.minDelay + time.Duration(f*span)
}

func (s *Simulator) EvaluateBusiness(ctx context.Context, bc engine.BusinessContext, ev engine.EvidenceMap, opts ...engine.EvaluateOption) (*engine.ComplianceEvaluation, error) {
	if err := s.sleeper.Sleep(ctx, s.Delay()); err != nil {
		return nil, err
	}
	return s.engine.EvaluateBusiness(bc, ev, opts...)
}

func (s *Simulator) EvaluateLearner(ctx context.Context, lc engine.LearnerContext, h engine.LearningHistory, opts ...engine.EvaluateOption) (*engine.LearnerEvaluation, error) {
	if err := s.sleeper.Sleep(ctx, s.Delay()); err != nil {
		return nil, err
	}
	return s.engine.EvaluateLearner(lc, h, opts...)
}
