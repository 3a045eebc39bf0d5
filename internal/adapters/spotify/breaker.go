package spotify

import (
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/sakshi-kolawale/MoodTune/internal/core/domain"
)

const (
	breakerName        = "spotify"
	breakerMaxFailures = 5
	breakerOpenFor     = 30 * time.Second
)

// ErrProviderUnavailable is returned while the breaker is open.
var ErrProviderUnavailable = fmt.Errorf("spotify adapter: %w", domain.ErrUnavailable)

func newBreaker(c *Client) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     breakerOpenFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerMaxFailures
		},
		// Client errors are the caller's fault, not the provider's.
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var apiErr *APIError
			if errors.As(err, &apiErr) {
				return !apiErr.Temporary()
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.log.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
}

// guard runs fn through the breaker.
func (c *Client) guard(fn func() error) error {
	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ErrProviderUnavailable
	}
	return err
}
