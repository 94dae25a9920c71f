package entity

import "time"

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityNormal Priority = "Normal"
	PriorityLow    Priority = "Low"
)

type SortOrder string

const (
	OrderAsc  SortOrder = "ASC"
	OrderDesc SortOrder = "DESC"
)

// Дефолты пагинации
const (
	DefaultPage  = 1
	DefaultLimit = 25
)

type Task struct {
	ID               int          `json:"id"`
	Title            string       `json:"title"`
	Description      *string      `json:"description,omitempty"`
	Priority         Priority     `json:"priority"`
	Start            *time.Time   `json:"start,omitempty"`
	End              *time.Time   `json:"end,omitempty"`
	IsDraft          bool         `json:"is_draft"`
	IsDone           bool         `json:"is_done"`
	OwnerId          int          `json:"owner_id"`
	TotalAttachments int          `json:"total_attachments"`
	Attachments      []Attachment `json:"attachments,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// валидация
type CreateTaskRequest struct {
	Title       string     `json:"title" validate:"required, min=1, max=255"`
	Description *string    `json:"description"` // опциональное поле
	Priority    Priority   `json:"priority" validate:"oneof=High Normal Low"`
	Start       *time.Time `json:"start"`
	End         *time.Time `json:"end"`
	IsDraft     bool       `json:"is_draft"`
	Assignees   []int      `json:"assignees"`
	Projects    []int      `json:"projects"`
}

// TaskSearchParams - параметры фильтрации списка задач.
// nil-поле означает, что фильтр не задан. Drafts применяется всегда:
// по умолчанию наружу видны только не-черновики.
type TaskSearchParams struct {
	Title    string
	Priority *Priority
	Status   *bool
	Drafts   bool
	Project  *int
	Start    *time.Time
	End      *time.Time
	SortBy   string
	Order    SortOrder
	Page     int
	Limit    int
}

func (p *TaskSearchParams) PageOrDefault() int {
	if p.Page <= 0 {
		return DefaultPage
	}
	return p.Page
}

func (p *TaskSearchParams) LimitOrDefault() int {
	if p.Limit <= 0 {
		return DefaultLimit
	}
	return p.Limit
}

type TaskStats struct {
	TotalCount        int `json:"totalCount"`
	CompletedCount    int `json:"completedCount"`
	NotCompletedCount int `json:"notCompletedCount"`
	DraftCount        int `json:"draftCount"`
}
