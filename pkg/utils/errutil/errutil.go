package errutil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/abhiram98920/teamtracker/pkg/utils/logging"
	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
)

// Handle logs the error with a message and reports it to Sentry when configured.
// The error is returned unchanged.
func Handle(ctx context.Context, err error, msg string) error {
	if err == nil {
		return nil
	}

	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error(msg,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error(msg, "error", err.Error())
	}

	capture(ctx, err)
	return err
}

// HandleJSON logs the error and writes `{"error": ..., "debug_logs": [...]}`.
func HandleJSON(ctx context.Context, w http.ResponseWriter, err error, statusCode int, debugLogs []string) {
	if err == nil {
		return
	}

	logHTTP(ctx, err, statusCode)

	if debugLogs == nil {
		debugLogs = []string{}
	}
	body, mErr := json.Marshal(struct {
		Error     string   `json:"error"`
		DebugLogs []string `json:"debug_logs"`
	}{
		Error:     err.Error(),
		DebugLogs: debugLogs,
	})
	if mErr != nil {
		http.Error(w, err.Error(), statusCode)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(body) //nolint:errcheck // header already committed
}

func logHTTP(ctx context.Context, err error, statusCode int) {
	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error("HTTP error",
			"status", statusCode,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error("HTTP error",
			"status", statusCode,
			"error", err.Error(),
		)
	}

	if statusCode >= http.StatusInternalServerError {
		capture(ctx, err)
	}
}

// capture sends err to Sentry if a client was initialized
func capture(ctx context.Context, err error) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	if hub.Client() == nil {
		return
	}
	hub.CaptureException(err)
}
