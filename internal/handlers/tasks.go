package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"TASKTRACKER_BACK-END/internal/dto"
	"TASKTRACKER_BACK-END/internal/models"
	"TASKTRACKER_BACK-END/internal/store"
	"TASKTRACKER_BACK-END/internal/utils"
)

// TasksHandler manages task-related endpoints. Every operation is scoped to
// the authenticated owner; a task belonging to someone else is reported as
// not found, never as forbidden.
type TasksHandler struct {
	tasks store.TaskRepository
}

// NewTasksHandler creates a new TasksHandler
func NewTasksHandler(tasks store.TaskRepository) *TasksHandler {
	return &TasksHandler{tasks: tasks}
}

// Create handles POST /api/tasks
// @Summary Create a new task
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body dto.CreateTaskRequest true "Task payload"
// @Success 201 {object} dto.CreateTaskResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/tasks [post]
func (h *TasksHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Not authorized")
		return
	}

	var req dto.CreateTaskRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "Title is required")
		return
	}

	status := models.StatusPending
	if req.Status != "" {
		status = models.TaskStatus(req.Status)
		if !status.Valid() {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "status must be pending, in-progress, or completed")
			return
		}
	}

	now := time.Now()
	task := &models.Task{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		OwnerID:     user.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.tasks.Create(r.Context(), task); err != nil {
		writeInternalError(w, "creating task", err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.CreateTaskResponse{
		Message: "Task created",
		Task:    toTaskResponse(task),
	})
}

// List handles GET /api/tasks
// @Summary List the caller's tasks, newest first
// @Tags tasks
// @Produce json
// @Success 200 {array} dto.TaskResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/tasks [get]
func (h *TasksHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Not authorized")
		return
	}

	tasks, err := h.tasks.ListByOwner(r.Context(), user.ID)
	if err != nil {
		writeInternalError(w, "listing tasks", err)
		return
	}

	resp := make([]dto.TaskResponse, 0, len(tasks))
	for i := range tasks {
		resp = append(resp, toTaskResponse(&tasks[i]))
	}
	utils.WriteJSONResponse(w, http.StatusOK, resp)
}

// Get handles GET /api/tasks/{id}
// @Summary Get one task by id
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} dto.TaskDetailResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/tasks/{id} [get]
func (h *TasksHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Not authorized")
		return
	}

	taskID, ok := parseTaskID(w, r)
	if !ok {
		return
	}

	task, err := h.tasks.GetByID(r.Context(), user.ID, taskID)
	if err != nil {
		writeTaskLookupError(w, "fetching task", err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.TaskDetailResponse{Task: toTaskResponse(task)})
}

// Update handles PUT/PATCH /api/tasks/{id}
// @Summary Update a task
// @Description Apply any subset of title, description, and status
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.UpdateTaskRequest true "Fields to change"
// @Success 200 {object} dto.TaskDetailResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/tasks/{id} [put]
func (h *TasksHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Not authorized")
		return
	}

	taskID, ok := parseTaskID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	patch := store.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Title != nil {
		trimmed := strings.TrimSpace(*req.Title)
		if trimmed == "" {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "Title is required")
			return
		}
		patch.Title = &trimmed
	}
	if req.Status != nil {
		status := models.TaskStatus(*req.Status)
		if !status.Valid() {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "status must be pending, in-progress, or completed")
			return
		}
		patch.Status = &status
	}

	task, err := h.tasks.Update(r.Context(), user.ID, taskID, patch)
	if err != nil {
		writeTaskLookupError(w, "updating task", err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.TaskDetailResponse{Task: toTaskResponse(task)})
}

// Delete handles DELETE /api/tasks/{id}
// @Summary Delete a task
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} object
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/tasks/{id} [delete]
func (h *TasksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Not authorized")
		return
	}

	taskID, ok := parseTaskID(w, r)
	if !ok {
		return
	}

	if err := h.tasks.Delete(r.Context(), user.ID, taskID); err != nil {
		writeTaskLookupError(w, "deleting task", err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, struct{}{})
}

// parseTaskID reads the {id} path segment. A value that is not a UUID cannot
// name any task, so it gets the same 404 a missing task would.
func parseTaskID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not found", "Task not found")
		return uuid.Nil, false
	}
	return id, true
}

func writeTaskLookupError(w http.ResponseWriter, action string, err error) {
	if errors.Is(err, store.ErrNotFound) {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not found", "Task not found")
		return
	}
	writeInternalError(w, action, err)
}

func toTaskResponse(t *models.Task) dto.TaskResponse {
	return dto.TaskResponse{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		OwnerID:     t.OwnerID.String(),
		CreatedAt:   utils.FormatTimestamp(t.CreatedAt),
		UpdatedAt:   utils.FormatTimestamp(t.UpdatedAt),
	}
}
