package service

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrPollTimeout reports that the wait budget elapsed before the checked
	// operation reached a terminal state.
	ErrPollTimeout = errors.New("processing timed out")
	// ErrPollFailed reports that the checked operation reached its terminal
	// error state.
	ErrPollFailed = errors.New("processing failed")
)

type PollStatus int

const (
	PollPending PollStatus = iota
	PollReady
	PollFailed
)

// StatusFunc reports the current state of an asynchronous operation. A non-nil
// error aborts the wait immediately and is returned as-is.
type StatusFunc func(ctx context.Context) (PollStatus, error)

// Poller repeatedly invokes a status check at a fixed interval until the
// operation is ready, fails, or the total wait budget elapses. The interval is
// deliberately fixed: the upstream rate limits are generous and backoff growth
// would only delay detecting success.
type Poller struct {
	Interval time.Duration
	MaxWait  time.Duration
}

// Wait blocks until check reports PollReady (nil), PollFailed (ErrPollFailed),
// the budget elapses (ErrPollTimeout) or ctx is cancelled. The first check runs
// immediately, so an already-ready operation never sleeps.
func (p Poller) Wait(ctx context.Context, check StatusFunc) error {
	deadline := time.Now().Add(p.MaxWait)
	for {
		status, err := check(ctx)
		if err != nil {
			return err
		}
		switch status {
		case PollReady:
			return nil
		case PollFailed:
			return ErrPollFailed
		}

		if time.Now().Add(p.Interval).After(deadline) {
			return ErrPollTimeout
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.Interval):
		}
	}
}
