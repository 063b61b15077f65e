// Package problempattern provides HTTP middlewares that simulate operational
// problems while the matching feature flag is enabled.
package problempattern

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	featureflags "github.com/easytrade/featureflags-go"
)

// DefaultDelay is the delay added by DelaySimulation when none is configured.
const DefaultDelay = 4000 * time.Millisecond

// TimeoutMessage is the body written by TimeoutError.
const TimeoutMessage = "Simulated timeout error occurred."

// BoolEvaluator evaluates boolean flags. *featureflags.Provider implements it.
type BoolEvaluator interface {
	BooleanEvaluation(ctx context.Context, key string, def bool, ec featureflags.EvaluationContext) featureflags.EvaluationResult[bool]
}

// enabled evaluates key with a false default, so a failing flag store never
// switches a problem on.
func enabled(r *http.Request, eval BoolEvaluator, key string) bool {
	return eval.BooleanEvaluation(r.Context(), key, false, featureflags.EvaluationContext{}).Value
}

// DelaySimulation delays every request by delay while the delay_simulation
// flag is enabled. A non-positive delay means DefaultDelay.
func DelaySimulation(eval BoolEvaluator, delay time.Duration, log *slog.Logger) func(http.Handler) http.Handler {
	if delay <= 0 {
		delay = DefaultDelay
	}
	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("middleware", "delay-simulation"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			on := enabled(r, eval, featureflags.FlagDelaySimulation)
			log.Debug("feature flag state", slog.Bool("delay_enabled", on))

			if on {
				log.Warn("delay simulation feature flag enabled, adding delay", slog.Duration("delay", delay))
				t := time.NewTimer(delay)
				select {
				case <-t.C:
				case <-r.Context().Done():
					t.Stop()
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// TimeoutError answers 504 without calling the next handler while the
// timeout_error flag is enabled.
func TimeoutError(eval BoolEvaluator, log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("middleware", "timeout-error"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			on := enabled(r, eval, featureflags.FlagTimeoutError)
			log.Debug("feature flag state", slog.Bool("timeout_enabled", on))

			if on {
				log.Warn("timeout simulation feature flag enabled")
				w.WriteHeader(http.StatusGatewayTimeout)
				_, _ = w.Write([]byte(TimeoutMessage))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
