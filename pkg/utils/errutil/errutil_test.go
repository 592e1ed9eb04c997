package errutil_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/abhiram98920/teamtracker/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

func TestHandleJSON(t *testing.T) {
	w := httptest.NewRecorder()
	err := goerr.New("token refresh failed", goerr.V("status", 401))

	errutil.HandleJSON(context.Background(), w, err, http.StatusInternalServerError, []string{"page 2 skipped"})

	gt.Number(t, w.Code).Equal(http.StatusInternalServerError)
	gt.String(t, w.Header().Get("Content-Type")).Equal("application/json")

	var body struct {
		Error     string   `json:"error"`
		DebugLogs []string `json:"debug_logs"`
	}
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &body)).Required()
	gt.String(t, body.Error).Contains("token refresh failed")
	gt.Value(t, body.DebugLogs).Equal([]string{"page 2 skipped"})
}

func TestHandleJSON_NilDebugLogs(t *testing.T) {
	w := httptest.NewRecorder()
	errutil.HandleJSON(context.Background(), w, goerr.New("bad input"), http.StatusBadRequest, nil)

	gt.Number(t, w.Code).Equal(http.StatusBadRequest)
	gt.String(t, w.Body.String()).Contains(`"debug_logs":[]`)
}

func TestHandle_NilError(t *testing.T) {
	gt.NoError(t, errutil.Handle(context.Background(), nil, "unused"))
}
