package mocks

import (
	"context"
	"time"

	"github.com/rpggio/deepwork/internal/domain/session"
	"github.com/stretchr/testify/mock"
)

// SessionRepository is a mock for session.Repository.
type SessionRepository struct {
	mock.Mock
}

func (m *SessionRepository) Create(ctx context.Context, sess *session.Session) error {
	args := m.Called(ctx, sess)
	return args.Error(0)
}

func (m *SessionRepository) List(ctx context.Context, opts session.ListOptions) ([]session.Session, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]session.Session); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SessionRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Observer is a mock for session.Observer.
type Observer struct {
	mock.Mock
}

func (m *Observer) ObserveAppend(elapsed time.Duration, err error) {
	m.Called(elapsed, err)
}

func (m *Observer) ObserveList(elapsed time.Duration, count int, err error) {
	m.Called(elapsed, count, err)
}
