package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"momopress/internal/services"
)

type stubUsers struct {
	services.UserServicer
	phones []string
	err    error
}

func (u *stubUsers) ListPhones(context.Context) ([]string, error) {
	return u.phones, u.err
}

type stubSyncer struct {
	mu      sync.Mutex
	calls   []string
	failFor map[string]bool
	skipFor map[string]bool
}

func (s *stubSyncer) Sync(_ context.Context, phone string, incremental bool) (*services.SyncResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, phone)
	if s.failFor[phone] {
		return nil, errors.New("boom")
	}
	return &services.SyncResult{Skipped: s.skipFor[phone], Incremental: incremental}, nil
}

func (s *stubSyncer) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func TestRunOnce(t *testing.T) {
	users := &stubUsers{phones: []string{"0781111111", "0782222222", "0783333333"}}
	syncer := &stubSyncer{
		failFor: map[string]bool{"0782222222": true},
		skipFor: map[string]bool{"0783333333": true},
	}

	ran := NewScheduler(users, syncer, time.Minute).RunOnce(context.Background())

	assert.Equal(t, 1, ran)
	assert.Equal(t, users.phones, syncer.calls, "a failing account should not stop the others")
}

func TestRunOnce_ListError(t *testing.T) {
	syncer := &stubSyncer{}
	ran := NewScheduler(&stubUsers{err: errors.New("db down")}, syncer, time.Minute).RunOnce(context.Background())

	assert.Zero(t, ran)
	assert.Zero(t, syncer.count())
}

func TestScheduler_StartStop(t *testing.T) {
	users := &stubUsers{phones: []string{"0781234567"}}
	syncer := &stubSyncer{}
	s := NewScheduler(users, syncer, 10*time.Millisecond)

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())
	assert.Error(t, s.Start(context.Background()), "second start should fail")

	assert.Eventually(t, func() bool { return syncer.count() >= 2 }, time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
	assert.False(t, s.IsRunning())
	require.NoError(t, s.Stop(ctx), "stopping twice is a no-op")
}

func TestScheduler_InvalidInterval(t *testing.T) {
	s := NewScheduler(&stubUsers{}, &stubSyncer{}, 0)
	assert.Error(t, s.Start(context.Background()))
	assert.False(t, s.IsRunning())
}
