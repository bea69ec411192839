package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/rpggio/deepwork/internal/clock"
	"github.com/rpggio/deepwork/internal/repository"
)

// Service records and lists deep work sessions.
type Service struct {
	repo     Repository
	clock    clock.Clock
	observer Observer
	logger   *slog.Logger
}

// ServiceOption customizes a Service.
type ServiceOption func(*Service)

// WithClock sets the clock used to stamp new sessions and to normalize
// timestamps read back from storage.
func WithClock(c clock.Clock) ServiceOption {
	return func(s *Service) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithObserver reports store outcomes to o.
func WithObserver(o Observer) ServiceOption {
	return func(s *Service) {
		if o != nil {
			s.observer = o
		}
	}
}

// NewService creates a new session service.
func NewService(repo Repository, logger *slog.Logger, opts ...ServiceOption) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Service{
		repo:     repo,
		clock:    clock.System{},
		observer: noopObserver{},
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Append stores a new session stamped with the current time. The returned
// error wraps ErrInvalidInput, ErrConnection or ErrWrite. Nothing is
// stored on failure and the call is never retried.
func (s *Service) Append(ctx context.Context, sub Submission) (*Session, error) {
	if err := ValidateSubmission(sub); err != nil {
		return nil, err
	}
	sub = sub.Normalize()

	sess := &Session{
		Timestamp: s.clock.Now(),
		Name:      sub.Name,
		Buddy:     sub.Buddy,
		Task:      sub.Task,
	}

	s.logger.Debug("saving session", "name", sess.Name, "buddy", sess.Buddy)
	start := time.Now()
	err := s.repo.Create(ctx, sess)
	s.observer.ObserveAppend(time.Since(start), err)
	if err != nil {
		kind := ErrWrite
		if errors.Is(err, repository.ErrUnavailable) {
			kind = ErrConnection
		}
		s.logger.Error("saving session failed",
			"op", "append",
			"name", sess.Name,
			"buddy", sess.Buddy,
			"kind", kind.Error(),
			"error", err,
		)
		return nil, fmt.Errorf("%w: %w", kind, err)
	}

	s.logger.Info("session saved", "id", sess.ID, "name", sess.Name, "buddy", sess.Buddy)
	return sess, nil
}

// ListAll returns every stored session in storage order. A failed read is
// logged and yields an empty slice, so callers cannot tell a failed read
// from an empty table.
func (s *Service) ListAll(ctx context.Context) []Session {
	return s.list(ctx, ListOptions{})
}

// ListRecent returns every stored session ordered newest first by the store.
// Failures degrade the same way as ListAll.
func (s *Service) ListRecent(ctx context.Context) []Session {
	return s.list(ctx, ListOptions{NewestFirst: true})
}

func (s *Service) list(ctx context.Context, opts ListOptions) []Session {
	start := time.Now()
	sessions, err := s.repo.List(ctx, opts)
	s.observer.ObserveList(time.Since(start), len(sessions), err)
	if err != nil {
		kind := ErrRead
		if errors.Is(err, repository.ErrUnavailable) {
			kind = ErrConnection
		}
		s.logger.Error("loading sessions failed",
			"op", "list",
			"newest_first", opts.NewestFirst,
			"error", fmt.Errorf("%w: %w", kind, err),
		)
		return []Session{}
	}

	loc := s.clock.Now().Location()
	for i := range sessions {
		sessions[i].Timestamp = sessions[i].Timestamp.In(loc)
	}
	if sessions == nil {
		sessions = []Session{}
	}
	return sessions
}

// Ping verifies the store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	if err := s.repo.Ping(ctx); err != nil {
		s.logger.Error("database connection failed", "op", "ping", "error", err)
		return fmt.Errorf("%w: %w", ErrConnection, err)
	}
	return nil
}
