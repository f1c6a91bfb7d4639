package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fazendaapp/fazenda-backend/api/middleware"
	"github.com/fazendaapp/fazenda-backend/api/responses"
	"github.com/fazendaapp/fazenda-backend/api/validators"
	"github.com/fazendaapp/fazenda-backend/pkg/enums"
	pkgerrors "github.com/fazendaapp/fazenda-backend/pkg/errors"
	"github.com/fazendaapp/fazenda-backend/pkg/logger"
	"github.com/fazendaapp/fazenda-backend/pkg/models"
)

type tasksRepository interface {
	List() []models.Task
	ByWorker(workerID string) []models.Task
	Create(ctx context.Context, task models.Task) error
	SetStatus(ctx context.Context, id string, status enums.TaskStatus) (bool, error)
	NextID() string
}

// ListTasks returns all tasks, optionally one worker's.
func ListTasks(tasks tasksRepository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records := tasks.List()
		if workerID := r.URL.Query().Get("workerId"); workerID != "" {
			records = tasks.ByWorker(workerID)
		}
		views := make([]taskView, 0, len(records))
		for _, record := range records {
			views = append(views, newTaskView(record))
		}
		responses.WriteSuccess(w, views)
	}
}

// MyTasks returns the tasks assigned to the authenticated field worker.
func MyTasks(tasks tasksRepository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records := tasks.ByWorker(middleware.WorkerIDFromContext(r.Context()))
		views := make([]taskView, 0, len(records))
		for _, record := range records {
			views = append(views, newTaskView(record))
		}
		responses.WriteSuccess(w, views)
	}
}

type createTaskRequest struct {
	Description string `json:"description" validate:"required"`
	WorkerID    string `json:"workerId"`
}

// CreateTask queues a unit of field work, pending by default.
func CreateTask(tasks tasksRepository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createTaskRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		task := models.Task{
			ID:          tasks.NextID(),
			Description: req.Description,
			Status:      enums.TaskStatusPending,
			WorkerID:    req.WorkerID,
		}
		if err := tasks.Create(r.Context(), task); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newTaskView(task))
	}
}

type taskStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending done"`
}

// SetTaskStatus moves a task through its states.
func SetTaskStatus(tasks tasksRepository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		taskID := chi.URLParam(r, "taskID")
		var req taskStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, _ := enums.ParseTaskStatus(req.Status)
		ok, err := tasks.SetStatus(r.Context(), taskID, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "task not found"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": req.Status})
	}
}
