package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/abhiram98920/teamtracker/pkg/utils/logging"
	"github.com/m-mizutani/gt"
)

func TestFromFallsBackToDefault(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	logging.SetDefault(logger)

	gt.Value(t, logging.From(context.Background())).Equal(logger)
}

func TestWithStoresLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	ctx := logging.With(context.Background(), logger)

	logging.From(ctx).Info("hello", "key", "value")
	gt.String(t, buf.String()).Contains("hello")
	gt.String(t, buf.String()).Contains("key=value")
}

func TestSetDefaultIgnoresNil(t *testing.T) {
	before := logging.Default()
	logging.SetDefault(nil)
	gt.Value(t, logging.Default()).Equal(before)
}
