package ai

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

type BreakerConfig struct {
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	MinRequests  uint32
	FailureRatio float64
}

func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:  3,
		Interval:     time.Minute,
		Timeout:      30 * time.Second,
		MinRequests:  5,
		FailureRatio: 0.6,
	}
}

type breakerEmbedder struct {
	next IEmbedder
	cb   *gobreaker.CircuitBreaker[[][]float32]
}

// WrapBreaker guards a remote embedder with a circuit breaker. Input errors
// do not count as failures.
func WrapBreaker(e IEmbedder, name string, cfg BreakerConfig) IEmbedder {
	if e == nil {
		return nil
	}
	cb := gobreaker.NewCircuitBreaker[[][]float32](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureRatio
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrEmptyInput) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logutil.GetLogger(context.Background()).Warn("embedder circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	return &breakerEmbedder{next: e, cb: cb}
}

func (b *breakerEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	res, err := b.cb.Execute(func() ([][]float32, error) {
		return b.next.Embed(ctx, texts)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, &EmbedError{Provider: b.next.ModelName(), Err: err}
		}
		return nil, err
	}
	return res, nil
}

func (b *breakerEmbedder) ModelName() string {
	return b.next.ModelName()
}
