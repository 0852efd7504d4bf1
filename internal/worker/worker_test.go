package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/portfolio-backend/internal/auth"
	"github.com/spec-kit/portfolio-backend/internal/domain"
	"github.com/spec-kit/portfolio-backend/internal/events"
	"github.com/spec-kit/portfolio-backend/internal/observability"
	"github.com/spec-kit/portfolio-backend/internal/service"
)

type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *stepClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestSweepRevocationsPrunesAndCounts(t *testing.T) {
	clock := &stepClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	registry := auth.NewRevocationRegistry(auth.WithRegistryClock(clock))
	registry.Revoke("a", clock.Now().Add(time.Minute))
	registry.Revoke("b", clock.Now().Add(time.Hour))
	metrics := observability.NewMetrics()

	clock.advance(2 * time.Minute)
	assert.Equal(t, 1, SweepRevocations(registry, metrics, zap.NewNop()))
	assert.Equal(t, 1, registry.Len())
	assert.Equal(t, int64(1), metrics.Snapshot().Auth[observability.AuthRevokedPruned])
}

type countingPruner struct {
	mu    sync.Mutex
	calls int
}

func (p *countingPruner) Prune() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return 0
}

func (p *countingPruner) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func TestRevocationSweeperRunsOnSchedule(t *testing.T) {
	pruner := &countingPruner{}
	scheduler, err := StartRevocationSweeper("@every 1s", pruner, nil, zap.NewNop())
	require.NoError(t, err)
	defer scheduler.Stop()

	require.Eventually(t, func() bool { return pruner.count() > 0 }, 3*time.Second, 50*time.Millisecond)
}

func TestRevocationSweeperRejectsBadSpec(t *testing.T) {
	_, err := StartRevocationSweeper("every minute", &countingPruner{}, nil, zap.NewNop())
	require.Error(t, err)
}

type recordingNotifier struct {
	mu   sync.Mutex
	seen []domain.ContactMessage
}

func (r *recordingNotifier) Name() string { return "recording" }

func (r *recordingNotifier) NotifyNewContact(_ context.Context, message domain.ContactMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, message)
	return nil
}

func (r *recordingNotifier) messages() []domain.ContactMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.ContactMessage(nil), r.seen...)
}

func TestNotificationWorkerDeliversPublishedMessages(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dispatcher := events.NewInMemoryDispatcher()
	notifier := &recordingNotifier{}
	StartNotificationWorker(ctx, service.NewNotificationService(dispatcher, zap.NewNop(), notifier))

	err := dispatcher.Publish(ctx, events.NewEvent(events.EventContactMessageReceived, "msg-1",
		events.ContactMessageReceivedPayload{MessageID: "msg-1", Subject: "Hello"}))
	require.NoError(t, err)

	require.Eventually(t, func() bool { return len(notifier.messages()) == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, "Hello", notifier.messages()[0].Subject)
}
