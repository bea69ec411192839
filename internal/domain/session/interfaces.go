package session

import (
	"context"
	"time"
)

// Repository provides persistence for sessions.
type Repository interface {
	Create(ctx context.Context, sess *Session) error
	List(ctx context.Context, opts ListOptions) ([]Session, error)
	Ping(ctx context.Context) error
}

// Observer receives the outcome of every store call.
type Observer interface {
	ObserveAppend(elapsed time.Duration, err error)
	ObserveList(elapsed time.Duration, count int, err error)
}

type noopObserver struct{}

func (noopObserver) ObserveAppend(time.Duration, error)     {}
func (noopObserver) ObserveList(time.Duration, int, error) {}
