package config_test

import (
	"errors"
	"testing"

	"github.com/abhiram98920/teamtracker/pkg/cli/config"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

func TestConfigErrors_SentinelIdentification(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		sentinelError error
		wantMatch     bool
	}{
		{
			name:          "ErrConfigNotFound can be identified",
			err:           goerr.Wrap(config.ErrConfigNotFound, "failed to load config"),
			sentinelError: config.ErrConfigNotFound,
			wantMatch:     true,
		},
		{
			name:          "ErrInvalidTimezone can be identified",
			err:           goerr.Wrap(config.ErrInvalidTimezone, "bad zone"),
			sentinelError: config.ErrInvalidTimezone,
			wantMatch:     true,
		},
		{
			name:          "ErrDuplicateTeam is not ErrInvalidCategory",
			err:           goerr.Wrap(config.ErrDuplicateTeam, "found duplicate"),
			sentinelError: config.ErrInvalidCategory,
			wantMatch:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, errors.Is(tt.err, tt.sentinelError)).Equal(tt.wantMatch)
		})
	}
}

func TestConfigErrors_ValuesPreserved(t *testing.T) {
	err := goerr.Wrap(config.ErrInvalidCategory, "unknown category",
		goerr.V(config.TeamNameKey, "Ops"),
		goerr.V(config.CategoryKey, "Operations"))

	values := goerr.Unwrap(err).Values()
	gt.Value(t, values[config.TeamNameKey]).Equal("Ops")
	gt.Value(t, values[config.CategoryKey]).Equal("Operations")
}
