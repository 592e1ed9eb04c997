package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/abhiram98920/teamtracker/pkg/domain/interfaces"
	"github.com/abhiram98920/teamtracker/pkg/usecase"
	"github.com/abhiram98920/teamtracker/pkg/utils/debuglog"
	"github.com/abhiram98920/teamtracker/pkg/utils/errutil"
	"github.com/abhiram98920/teamtracker/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		writeError(w, r, goerr.Wrap(err, "failed to marshal response"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(r.Context(), w, data)
}

// writeError maps err to a status code and writes `{error, debug_logs}`
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	errutil.HandleJSON(ctx, w, err, statusOf(err), debuglog.From(ctx).Entries())
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, usecase.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, interfaces.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(r *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return goerr.Wrap(usecase.ErrInvalidArgument, "failed to read request body", goerr.V("error", err.Error()))
	}
	if len(body) == 0 {
		return goerr.Wrap(usecase.ErrInvalidArgument, "request body is required")
	}
	if err := json.Unmarshal(body, v); err != nil {
		return goerr.Wrap(usecase.ErrInvalidArgument, "invalid JSON body", goerr.V("error", err.Error()))
	}
	return nil
}
