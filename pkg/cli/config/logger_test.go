package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abhiram98920/teamtracker/pkg/cli/config"
	"github.com/abhiram98920/teamtracker/pkg/utils/logging"
	"github.com/m-mizutani/gt"
)

func TestLogger_Configure(t *testing.T) {
	original := logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	t.Run("json to file redacts secrets", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.log")
		closer, err := config.NewLoggerForTest("info", "json", path).Configure()
		gt.NoError(t, err).Required()

		type credential struct {
			Name  string
			Token string `masq:"secret"`
		}
		logging.Default().Info("configured", "cred", credential{Name: "hubstaff", Token: "very-secret-value"})
		closer()

		data, err := os.ReadFile(path)
		gt.NoError(t, err).Required()
		gt.String(t, string(data)).Contains("hubstaff")
		gt.Bool(t, strings.Contains(string(data), "very-secret-value")).False()
	})

	t.Run("console", func(t *testing.T) {
		closer, err := config.NewLoggerForTest("debug", "console", "stderr").Configure()
		gt.NoError(t, err).Required()
		closer()
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := config.NewLoggerForTest("verbose", "json", "stdout").Configure()
		gt.Error(t, err)
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := config.NewLoggerForTest("info", "xml", "stdout").Configure()
		gt.Error(t, err)
	})
}
