package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alimikegami/point-of-sales/storefront-service/internal/dto"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loadStep struct {
	view dto.ConfirmationView
	err  error
}

type scriptedLoader struct {
	mu        sync.Mutex
	steps     []loadStep
	delay     time.Duration
	calls     int
	active    int
	maxActive int
}

func (l *scriptedLoader) Load(ctx context.Context, code string) (dto.ConfirmationView, error) {
	l.mu.Lock()
	i := l.calls
	l.calls++
	l.active++
	if l.active > l.maxActive {
		l.maxActive = l.active
	}
	l.mu.Unlock()

	if i > 0 && l.delay > 0 {
		time.Sleep(l.delay)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.active--
	if i >= len(l.steps) {
		i = len(l.steps) - 1
	}
	return l.steps[i].view, l.steps[i].err
}

func (l *scriptedLoader) callCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}

func waitingForMetadata() dto.ConfirmationView {
	return dto.ConfirmationView{
		Phase:         dto.PhaseWaiting,
		OrderCode:     "ORD1",
		MetadataRetry: &dto.PollingDirective{IntervalMs: 2000, MaxAttempts: MetadataRetryMaxAttempts},
	}
}

func waitingForSettlement() dto.ConfirmationView {
	return dto.ConfirmationView{
		Phase:        dto.PhaseWaiting,
		OrderCode:    "ORD1",
		StatePolling: &dto.PollingDirective{IntervalMs: 15000},
	}
}

func settled() dto.ConfirmationView {
	return dto.ConfirmationView{Phase: dto.PhaseSuccess, OrderCode: "ORD1", Redirect: "/checkout/success/ORD1"}
}

func runPoller(t *testing.T, loader ConfirmationLoader) ([]dto.ConfirmationView, error) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var views []dto.ConfirmationView
	err := NewConfirmationPoller(loader).
		WithIntervals(2*time.Millisecond, 3*time.Millisecond).
		Run(ctx, "ORD1", func(v dto.ConfirmationView) error {
			views = append(views, v)
			return nil
		})
	require.NoError(t, ctx.Err(), "poller did not finish")

	return views, err
}

func redirects(views []dto.ConfirmationView) int {
	n := 0
	for _, v := range views {
		if v.Redirect != "" {
			n++
		}
	}
	return n
}

func TestConfirmationPoller_Run(t *testing.T) {
	t.Run("settled on first load", func(t *testing.T) {
		loader := &scriptedLoader{steps: []loadStep{{view: settled()}}}

		views, err := runPoller(t, loader)
		require.NoError(t, err)
		assert.Len(t, views, 1)
		assert.Equal(t, 1, loader.callCount())
	})

	t.Run("declined is never polled", func(t *testing.T) {
		loader := &scriptedLoader{steps: []loadStep{{view: dto.ConfirmationView{Phase: dto.PhaseFailed, RetryLink: "/checkout"}}}}

		views, err := runPoller(t, loader)
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, dto.PhaseFailed, views[0].Phase)
		assert.Equal(t, 1, loader.callCount())
	})

	t.Run("metadata retry until settled redirects once", func(t *testing.T) {
		loader := &scriptedLoader{steps: []loadStep{
			{view: waitingForMetadata()},
			{view: waitingForSettlement()},
			{view: waitingForSettlement()},
			{view: settled()},
		}}

		views, err := runPoller(t, loader)
		require.NoError(t, err)
		assert.Equal(t, 1, redirects(views))
		assert.Equal(t, dto.PhaseSuccess, views[len(views)-1].Phase)
		assert.Equal(t, 4, loader.callCount())
	})

	t.Run("metadata retries are capped", func(t *testing.T) {
		loader := &scriptedLoader{steps: []loadStep{{view: waitingForMetadata()}}}

		views, err := runPoller(t, loader)
		require.NoError(t, err)
		assert.Equal(t, 1+MetadataRetryMaxAttempts, loader.callCount())
		assert.Len(t, views, 1+MetadataRetryMaxAttempts)
		assert.Equal(t, 0, redirects(views))
	})

	t.Run("failed revalidation keeps polling", func(t *testing.T) {
		loader := &scriptedLoader{steps: []loadStep{
			{view: waitingForSettlement()},
			{err: errs.ErrUpstream},
			{view: settled()},
		}}

		views, err := runPoller(t, loader)
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, dto.PhaseSuccess, views[1].Phase)
	})

	t.Run("initial failure renders the error view", func(t *testing.T) {
		loader := &scriptedLoader{steps: []loadStep{{err: errs.ErrOrderNotFound}}}

		views, err := runPoller(t, loader)
		assert.ErrorIs(t, err, errs.ErrOrderNotFound)
		require.Len(t, views, 1)
		assert.Equal(t, dto.PhaseError, views[0].Phase)
		assert.Equal(t, OrderHistoryPath, views[0].Link)
		assert.Equal(t, 1, loader.callCount())
	})

	t.Run("one revalidation at a time", func(t *testing.T) {
		loader := &scriptedLoader{
			delay: 20 * time.Millisecond,
			steps: []loadStep{
				{view: waitingForSettlement()},
				{view: waitingForSettlement()},
				{view: settled()},
			},
		}

		views, err := runPoller(t, loader)
		require.NoError(t, err)
		assert.Equal(t, 1, redirects(views))
		assert.Equal(t, 3, loader.callCount())
		assert.Equal(t, 1, loader.maxActive)
	})
}

func TestConfirmationPoller_StopsOnCancel(t *testing.T) {
	loader := &scriptedLoader{steps: []loadStep{{view: waitingForSettlement()}}}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- NewConfirmationPoller(loader).
			WithIntervals(time.Hour, time.Hour).
			Run(ctx, "ORD1", func(dto.ConfirmationView) error { return nil })
	}()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("poller ignored cancellation")
	}
}

func TestConfirmationPoller_EmitFailureEndsRun(t *testing.T) {
	loader := &scriptedLoader{steps: []loadStep{{view: waitingForSettlement()}}}
	gone := errors.New("client went away")

	err := NewConfirmationPoller(loader).
		WithIntervals(time.Millisecond, time.Millisecond).
		Run(context.Background(), "ORD1", func(dto.ConfirmationView) error { return gone })
	assert.ErrorIs(t, err, gone)
	assert.Equal(t, 1, loader.callCount())
}
