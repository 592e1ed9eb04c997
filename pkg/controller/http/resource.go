package http

import (
	"net/http"

	"github.com/abhiram98920/teamtracker/pkg/domain/model"
	"github.com/abhiram98920/teamtracker/pkg/domain/types"
	"github.com/abhiram98920/teamtracker/pkg/usecase"
	"github.com/abhiram98920/teamtracker/pkg/utils/debuglog"
	"github.com/go-chi/chi/v5"
)

func listProjectsHandler(uc *usecase.UseCases) http.HandlerFunc {
	type response struct {
		Projects []*model.Project `json:"projects"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := uc.Project.List(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, response{Projects: projects})
	}
}

func putProjectHandler(uc *usecase.UseCases) http.HandlerFunc {
	type request struct {
		Name         string  `json:"name"`
		AllottedDays float64 `json:"allotted_days"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err)
			return
		}

		project, err := uc.Project.Put(r.Context(), req.Name, req.AllottedDays)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, project)
	}
}

func listTasksHandler(uc *usecase.UseCases) http.HandlerFunc {
	type response struct {
		Tasks []*model.Task `json:"tasks"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		tasks, err := uc.Task.List(r.Context(), r.URL.Query().Get("assignee"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, response{Tasks: tasks})
	}
}

func putTaskHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var task model.Task
		if err := decodeJSON(r, &task); err != nil {
			writeError(w, r, err)
			return
		}

		stored, err := uc.Task.Put(r.Context(), &task)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, stored)
	}
}

func deleteTaskHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := model.TaskID(chi.URLParam(r, "taskID"))
		if err := uc.Task.Delete(r.Context(), id); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func listLeavesHandler(uc *usecase.UseCases) http.HandlerFunc {
	type response struct {
		Date   types.Date     `json:"date"`
		Leaves []*model.Leave `json:"leaves"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		date := types.Date(r.URL.Query().Get("date"))
		if date.IsZero() {
			date = uc.Today()
		}

		leaves, err := uc.Leave.List(r.Context(), date)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, response{Date: date, Leaves: leaves})
	}
}

func recordLeaveHandler(uc *usecase.UseCases) http.HandlerFunc {
	type request struct {
		Name   string     `json:"name"`
		Date   types.Date `json:"date"`
		Reason string     `json:"reason"`
	}
	type response struct {
		Leave     *model.Leave `json:"leave"`
		DebugLogs []string     `json:"debug_logs"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err)
			return
		}

		leave, err := uc.Leave.Record(r.Context(), req.Name, req.Date, req.Reason)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusCreated, response{
			Leave:     leave,
			DebugLogs: debuglog.From(r.Context()).Entries(),
		})
	}
}
