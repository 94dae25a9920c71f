package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	apimw "github.com/hirwaf/task-management-be/internal/api/middleware"
	"github.com/hirwaf/task-management-be/internal/entity"
	"github.com/hirwaf/task-management-be/internal/infrastructure/upload"
	"github.com/hirwaf/task-management-be/internal/usecase"
)

type TaskHandler struct {
	taskService   *usecase.TaskService
	exportService *usecase.ExportService
	storage       *upload.Storage
}

func NewTaskHandler(taskService *usecase.TaskService, exportService *usecase.ExportService, storage *upload.Storage) *TaskHandler {
	return &TaskHandler{
		taskService:   taskService,
		exportService: exportService,
		storage:       storage,
	}
}

// GET /tasks - страница задач вызывающего
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	userID := apimw.UserID(r)
	params := parseSearchParams(r)

	page, err := h.taskService.ListTasks(r.Context(), userID, params)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// GET /tasks/stats
func (h *TaskHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID := apimw.UserID(r)

	stats, err := h.taskService.GetStatistics(r.Context(), userID)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// GET /tasks/excel-export - та же фильтрация, что у списка
func (h *TaskHandler) ExportTasks(w http.ResponseWriter, r *http.Request) {
	userID := apimw.UserID(r)
	params := parseSearchParams(r)

	path, err := h.exportService.ExportExcel(r.Context(), userID, params)
	if err != nil {
		switch err {
		case entity.ErrNothingToExport:
			http.Error(w, "file not found", http.StatusNotFound)
		default:
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="tasks.xlsx"`)
	http.ServeFile(w, r, path)
}

// GET /tasks/projects/list
func (h *TaskHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.taskService.ListProjects(r.Context())
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if projects == nil {
		projects = []entity.Project{}
	}
	writeJSON(w, http.StatusOK, projects)
}

// GET /tasks/{id}
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid task Id", http.StatusBadRequest)
		return
	}

	userID := apimw.UserID(r)

	task, err := h.taskService.GetTask(r.Context(), taskID, userID)
	if err != nil {
		switch err {
		case entity.ErrTaskNotFound:
			http.Error(w, "task not found", http.StatusNotFound)
		default:
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// POST /tasks - JSON или multipart с файлами в поле attachments
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	req, files, err := h.readTaskRequest(r)
	if err != nil {
		writeUploadError(w, err)
		return
	}

	userID := apimw.UserID(r)

	task, err := h.taskService.CreateTask(r.Context(), userID, req, files)
	if err != nil {
		switch err {
		case entity.ErrInvalidTaskData:
			http.Error(w, "invalid task data", http.StatusBadRequest)
		default:
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

// PATCH /tasks/{id}
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid task Id", http.StatusBadRequest)
		return
	}

	req, files, err := h.readTaskRequest(r)
	if err != nil {
		writeUploadError(w, err)
		return
	}

	userID := apimw.UserID(r)

	task, err := h.taskService.UpdateTask(r.Context(), taskID, userID, req, files)
	if err != nil {
		switch err {
		case entity.ErrUpdateFailed:
			http.Error(w, "update failed", http.StatusBadRequest)
		case entity.ErrTaskNotFound:
			http.Error(w, "task not found", http.StatusNotFound)
		default:
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// DELETE /tasks/{id} - мягкое удаление
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid task Id", http.StatusBadRequest)
		return
	}

	userID := apimw.UserID(r)

	if err := h.taskService.DeleteTask(r.Context(), taskID, userID); err != nil {
		switch err {
		case entity.ErrTaskNotFound:
			http.Error(w, "task not found", http.StatusNotFound)
		default:
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /tasks/{id}/attachments/{attachmentId}
func (h *TaskHandler) AssociateAttachment(w http.ResponseWriter, r *http.Request) {
	taskID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid task Id", http.StatusBadRequest)
		return
	}
	attachmentID, err := strconv.Atoi(chi.URLParam(r, "attachmentId"))
	if err != nil {
		http.Error(w, "Invalid attachment Id", http.StatusBadRequest)
		return
	}

	if err := h.taskService.AssociateAttachment(r.Context(), taskID, attachmentID); err != nil {
		switch err {
		case entity.ErrTaskNotFound:
			http.Error(w, "task not found", http.StatusNotFound)
		case entity.ErrAttachmentNotFound:
			http.Error(w, "attachment not found", http.StatusNotFound)
		default:
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// readTaskRequest разбирает тело создания/обновления: либо чистый JSON,
// либо multipart с файлами в поле attachments
func (h *TaskHandler) readTaskRequest(r *http.Request) (*entity.CreateTaskRequest, []entity.UploadedFile, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			return nil, nil, err
		}

		req := &entity.CreateTaskRequest{
			Title:       r.FormValue("title"),
			Description: optionalString(r.FormValue("description")),
			Priority:    entity.Priority(r.FormValue("priority")),
			Start:       parseTime(r.FormValue("start")),
			End:         parseTime(r.FormValue("end")),
			Assignees:   parseIntList(r.Form["assignees"]),
			Projects:    parseIntList(r.Form["projects"]),
		}
		if drafts, err := strconv.ParseBool(r.FormValue("is_draft")); err == nil {
			req.IsDraft = drafts
		}

		files, err := h.storage.SaveAll(r.MultipartForm.File["attachments"])
		if err != nil {
			return nil, nil, err
		}
		return req, files, nil
	}

	var req entity.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, nil, err
	}
	return &req, nil, nil
}

// parseSearchParams - query-параметры списка; невалидные значения
// просто не попадают в фильтр
func parseSearchParams(r *http.Request) *entity.TaskSearchParams {
	q := r.URL.Query()

	params := &entity.TaskSearchParams{
		Title:  q.Get("title"),
		SortBy: q.Get("sortBy"),
		Order:  entity.SortOrder(strings.ToUpper(q.Get("order"))),
		Start:  parseTime(q.Get("start")),
		End:    parseTime(q.Get("end")),
	}

	if v := q.Get("priority"); v != "" {
		priority := entity.Priority(v)
		params.Priority = &priority
	}
	if v, err := strconv.ParseBool(q.Get("status")); q.Get("status") != "" && err == nil {
		params.Status = &v
	}
	// drafts применяется всегда: отсутствие значения = false
	if v, err := strconv.ParseBool(q.Get("drafts")); err == nil {
		params.Drafts = v
	}
	if v, err := strconv.Atoi(q.Get("project")); err == nil && v > 0 {
		params.Project = &v
	}
	if v, err := strconv.Atoi(q.Get("page")); err == nil {
		params.Page = v
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		params.Limit = v
	}

	return params
}

func parseTime(value string) *time.Time {
	if value == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}

func parseIntList(values []string) []int {
	var ids []int
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if id, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func writeUploadError(w http.ResponseWriter, err error) {
	switch err {
	case entity.ErrTooManyFiles, entity.ErrFileTooLarge, entity.ErrFileType:
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "Invalid request body", http.StatusBadRequest)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
