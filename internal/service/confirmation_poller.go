package service

import (
	"context"
	"time"

	"github.com/alimikegami/point-of-sales/storefront-service/internal/dto"
	"github.com/rs/zerolog/log"
)

type ConfirmationLoader interface {
	Load(ctx context.Context, code string) (dto.ConfirmationView, error)
}

// ConfirmationPoller follows the polling directives of a confirmation view
// until the payment reaches a terminal state, the retry budget runs out or
// ctx is cancelled.
type ConfirmationPoller struct {
	loader              ConfirmationLoader
	metadataInterval    time.Duration
	stateInterval       time.Duration
	maxMetadataAttempts int
}

func NewConfirmationPoller(loader ConfirmationLoader) *ConfirmationPoller {
	return &ConfirmationPoller{
		loader:              loader,
		metadataInterval:    MetadataRetryInterval,
		stateInterval:       StatePollingInterval,
		maxMetadataAttempts: MetadataRetryMaxAttempts,
	}
}

func (p *ConfirmationPoller) WithIntervals(metadata, state time.Duration) *ConfirmationPoller {
	cp := *p
	cp.metadataInterval = metadata
	cp.stateInterval = state
	return &cp
}

type loadResult struct {
	view dto.ConfirmationView
	err  error
}

// Run emits the initial view and every revalidated one. A failed initial
// load emits the error view and returns the error; later failures are logged
// and polling continues. A success view, and with it the redirect, is
// emitted at most once since it ends the run.
func (p *ConfirmationPoller) Run(ctx context.Context, code string, emit func(dto.ConfirmationView) error) error {
	view, err := p.loader.Load(ctx, code)
	if err != nil {
		if emitErr := emit(ErrorView(code, err)); emitErr != nil {
			return emitErr
		}
		return err
	}

	if err := emit(view); err != nil {
		return err
	}
	if view.Terminal() {
		return nil
	}

	var (
		metadataTicker   *time.Ticker
		stateTicker      *time.Ticker
		metadataAttempts int
		inFlight         bool
		results          = make(chan loadResult, 1)
	)

	stop := func(t **time.Ticker) {
		if *t != nil {
			(*t).Stop()
			*t = nil
		}
	}
	defer stop(&metadataTicker)
	defer stop(&stateTicker)

	schedule := func(v dto.ConfirmationView) {
		wantMetadata := v.MetadataRetry != nil && metadataAttempts < p.maxMetadataAttempts
		switch {
		case wantMetadata && metadataTicker == nil:
			metadataTicker = time.NewTicker(p.metadataInterval)
		case !wantMetadata:
			stop(&metadataTicker)
		}

		switch {
		case v.StatePolling != nil && stateTicker == nil:
			stateTicker = time.NewTicker(p.stateInterval)
		case v.StatePolling == nil:
			stop(&stateTicker)
		}
	}

	revalidate := func() {
		inFlight = true
		go func() {
			v, err := p.loader.Load(ctx, code)
			results <- loadResult{view: v, err: err}
		}()
	}

	schedule(view)

	for {
		if metadataTicker == nil && stateTicker == nil && !inFlight {
			return nil
		}

		select {
		case <-ctx.Done():
			return nil

		case <-tickerC(metadataTicker):
			if inFlight {
				continue
			}
			metadataAttempts++
			if metadataAttempts >= p.maxMetadataAttempts {
				stop(&metadataTicker)
			}
			revalidate()

		case <-tickerC(stateTicker):
			if inFlight {
				continue
			}
			revalidate()

		case r := <-results:
			inFlight = false
			if r.err != nil {
				log.Ctx(ctx).Warn().Err(r.err).Str("component", "ConfirmationPoller").Str("order_code", code).Msg("revalidation failed")
				continue
			}

			if err := emit(r.view); err != nil {
				return err
			}
			if r.view.Terminal() {
				return nil
			}
			schedule(r.view)
		}
	}
}

// tickerC returns nil for a stopped ticker so its select case never fires.
func tickerC(t *time.Ticker) <-chan time.Time {
	if t == nil {
		return nil
	}
	return t.C
}
