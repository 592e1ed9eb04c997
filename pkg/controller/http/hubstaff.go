package http

import (
	"context"
	"net/http"

	"github.com/abhiram98920/teamtracker/pkg/domain/types"
	"github.com/abhiram98920/teamtracker/pkg/usecase"
	"github.com/abhiram98920/teamtracker/pkg/utils/async"
	"github.com/abhiram98920/teamtracker/pkg/utils/debuglog"
	"github.com/abhiram98920/teamtracker/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

func projectActivityHandler(uc *usecase.UseCases) http.HandlerFunc {
	type request struct {
		ProjectNames string `json:"project_names"`
	}
	type response struct {
		Results   []*usecase.ProjectActivity `json:"results"`
		DebugLogs []string                   `json:"debug_logs"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err)
			return
		}

		results, err := uc.Activity.ProjectActivity(r.Context(), usecase.ParseProjectNames(req.ProjectNames))
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, response{
			Results:   results,
			DebugLogs: debuglog.From(r.Context()).Entries(),
		})
	}
}

func qaReportHandler(uc *usecase.UseCases) http.HandlerFunc {
	type request struct {
		Date        types.Date `json:"date"`
		QAName      string     `json:"qaName"`
		PostToSlack bool       `json:"post_to_slack"`
	}
	type response struct {
		*usecase.QAReport
		DebugLogs []string `json:"debug_logs"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err)
			return
		}

		report, err := uc.Report.QAReport(r.Context(), req.Date, req.QAName, req.PostToSlack)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, response{
			QAReport:  report,
			DebugLogs: debuglog.From(r.Context()).Entries(),
		})
	}
}

func cacheStatusHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, uc.Directory.Status())
	}
}

// cacheInvalidateHandler marks the directory stale and reloads it in the
// background so the next request finds it warm
func cacheInvalidateHandler(uc *usecase.UseCases) http.HandlerFunc {
	type response struct {
		Invalidated bool                `json:"invalidated"`
		Refreshing  bool                `json:"refreshing"`
		Status      usecase.CacheStatus `json:"status"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		uc.Directory.Invalidate()
		logging.From(r.Context()).Info("directory cache invalidated")

		refreshing := uc.HubstaffEnabled()
		if refreshing {
			async.Dispatch(r.Context(), "directory_refresh", func(ctx context.Context) error {
				if _, err := uc.Directory.Refresh(ctx); err != nil {
					return goerr.Wrap(err, "background directory refresh failed")
				}
				return nil
			})
		}

		writeJSON(w, r, http.StatusAccepted, response{
			Invalidated: true,
			Refreshing:  refreshing,
			Status:      uc.Directory.Status(),
		})
	}
}
