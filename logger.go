package featureflags

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

type requestLogKey struct{}

type requestLog struct {
	logger    *slog.Logger
	startTime time.Time
}

// restySlogLogger implements a [resty.Logger] using a [slog.Logger].
type restySlogLogger struct {
	logger *slog.Logger
}

func (s restySlogLogger) Errorf(format string, v ...interface{}) {
	s.logger.Error(fmt.Sprintf(format, v...))
}

func (s restySlogLogger) Warnf(format string, v ...interface{}) {
	s.logger.Warn(fmt.Sprintf(format, v...))
}

func (s restySlogLogger) Debugf(format string, v ...interface{}) {
	s.logger.Debug(fmt.Sprintf(format, v...))
}

// newRestyLogRequestMiddleware tags every request with a fresh request ID and
// keeps a child logger for the response side.
func newRestyLogRequestMiddleware(logger *slog.Logger) resty.RequestMiddleware {
	return func(c *resty.Client, req *resty.Request) error {
		requestID := uuid.NewString()
		req.SetHeader(RequestIDHeader, requestID)

		reqLogger := logger.WithGroup("http").With(
			slog.String("method", req.Method),
			slog.String("url", req.URL),
			slog.String("request_id", requestID),
		)
		reqLogger.Debug("request")

		req.SetContext(context.WithValue(req.Context(), requestLogKey{}, requestLog{
			logger:    reqLogger,
			startTime: time.Now(),
		}))
		return nil
	}
}

func newRestyLogResponseMiddleware(logger *slog.Logger) resty.ResponseMiddleware {
	return func(client *resty.Client, resp *resty.Response) error {
		rl, ok := resp.Request.Context().Value(requestLogKey{}).(requestLog)
		if !ok {
			rl = requestLog{logger: logger, startTime: time.Now()}
		}
		reqLogger := rl.logger.With(
			slog.Int("status", resp.StatusCode()),
			slog.Duration("duration", time.Since(rl.startTime)),
			slog.Int64("content_length", resp.Size()),
		)
		if resp.IsError() {
			reqLogger.Warn("error response")
		} else {
			reqLogger.Debug("response")
		}
		return nil
	}
}

func newRestyErrorHook(logger *slog.Logger) resty.ErrorHook {
	return func(req *resty.Request, err error) {
		l := logger
		if rl, ok := req.Context().Value(requestLogKey{}).(requestLog); ok {
			l = rl.logger.With(slog.Duration("duration", time.Since(rl.startTime)))
		}
		l.Debug("request failed", slog.Any("error", err))
	}
}
