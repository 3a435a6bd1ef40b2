package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/boubliclub/formrelay/pkg/binder"
	"github.com/boubliclub/formrelay/pkg/logger"
	"github.com/boubliclub/formrelay/pkg/requestid"
	"github.com/boubliclub/formrelay/pkg/validator"
)

// ErrorHandlerConfig holds the user-facing messages for errors that carry
// none of their own.
type ErrorHandlerConfig struct {
	BadRequestMessage    string
	InternalErrorMessage string
}

// ErrorInfo contains classified error information.
type ErrorInfo struct {
	StatusCode int
	Message    string
	LogLevel   slog.Level
}

func setConfigDefaults(cfg ErrorHandlerConfig) ErrorHandlerConfig {
	if cfg.BadRequestMessage == "" {
		cfg.BadRequestMessage = http.StatusText(http.StatusBadRequest)
	}
	if cfg.InternalErrorMessage == "" {
		cfg.InternalErrorMessage = http.StatusText(http.StatusInternalServerError)
	}
	return cfg
}

// ClassifyError maps err to a status code, a public message and a log level.
func ClassifyError(err error, cfg ErrorHandlerConfig) ErrorInfo {
	cfg = setConfigDefaults(cfg)
	info := ErrorInfo{
		StatusCode: http.StatusInternalServerError,
		Message:    cfg.InternalErrorMessage,
	}

	var httpErr HTTPError
	switch {
	case errors.As(err, &httpErr):
		info.StatusCode = httpErr.Code
		info.Message = httpErr.Message
	case validator.IsValidationError(err):
		info.StatusCode = http.StatusUnprocessableEntity
		info.Message = validator.ExtractValidationErrors(err).Join(" ")
	case binder.IsBindingError(err):
		info.StatusCode = http.StatusBadRequest
		info.Message = cfg.BadRequestMessage
	}

	info.LogLevel = slog.LevelError
	if info.StatusCode < http.StatusInternalServerError {
		info.LogLevel = slog.LevelWarn
	}
	return info
}

// NewErrorHandler renders errors as Failure responses and logs them with
// the request id.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	cfg = setConfigDefaults(cfg)
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		info := ClassifyError(err, cfg)

		log.LogAttrs(r.Context(), info.LogLevel, "request error",
			logger.RequestID(requestid.FromContext(r.Context())),
			logger.Error(err),
			slog.Int("status_code", info.StatusCode),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		)

		if renderErr := Failure(info.StatusCode, info.Message).Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.Error("failed to render error response",
				logger.RequestID(requestid.FromContext(r.Context())),
				logger.Error(renderErr),
				logger.Event("render_error_response"),
			)
		}
	}
}
