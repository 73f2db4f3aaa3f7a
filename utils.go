package formdata

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}

// retryable executes call with exponential backoff. Errors for which
// shouldRetry returns false end the loop immediately, as does ctx.
func retryable(ctx context.Context, call func() error, shouldRetry func(error) bool, max int, backoff time.Duration, log *slog.Logger) error {
	if max <= 0 {
		return call() // no retry
	}

	delay := backoff
	for i := 0; i <= max; i++ {
		err := call()
		if err == nil {
			if i > 0 {
				log.Debug("Attempt succeeded", "attempt", i+1)
			}
			return nil
		}
		if i == max || !shouldRetry(err) {
			log.Debug("Final attempt failed", "attempt", i+1, "error", err)
			return err
		}

		log.Debug("Attempt failed, retrying", "attempt", i+1, "error", err, "delay", delay)
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("%w (last error: %v)", ctx.Err(), err)
		case <-timer.C:
		}
		delay *= 2
	}
	return nil
}
