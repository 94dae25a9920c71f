package repository

import (
	"context"

	"github.com/hirwaf/task-management-be/internal/entity"
)

// ITaskRepository - интерфейс для TaskRepository
type ITaskRepository interface {
	Create(ctx context.Context, ownerID int, req *entity.CreateTaskRequest) (*entity.Task, error)
	GetByTaskId(ctx context.Context, taskID, ownerID int) (*entity.Task, error)
	GetById(ctx context.Context, taskID int) (*entity.Task, error)
	List(ctx context.Context, ownerID int, params *entity.TaskSearchParams) ([]entity.Task, int, error)
	Update(ctx context.Context, taskID, ownerID int, req *entity.CreateTaskRequest) (int64, error)
	SoftDelete(ctx context.Context, taskID, ownerID int) (int64, error)
	Stats(ctx context.Context, ownerID int) (*entity.TaskStats, error)
}

// IAttachmentRepository - интерфейс для AttachmentRepository
type IAttachmentRepository interface {
	Create(ctx context.Context, attachment *entity.Attachment) (*entity.Attachment, error)
	GetById(ctx context.Context, id int) (*entity.Attachment, error)
	ListByTaskId(ctx context.Context, taskID int) ([]entity.Attachment, error)
	AttachToTask(ctx context.Context, attachmentID, taskID int) error
}

// IProjectRepository - интерфейс для ProjectRepository
type IProjectRepository interface {
	List(ctx context.Context) ([]entity.Project, error)
}

// IUserRepository - интерфейс для UserRepository
type IUserRepository interface {
	CreateWithAuth(ctx context.Context, name, email, passwordHash string) (*entity.User, error)
	GetById(ctx context.Context, id int) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	ListExcept(ctx context.Context, exceptID int) ([]entity.User, error)
}

// ITaskAuditRepository - интерфейс для TaskAuditRepository
type ITaskAuditRepository interface {
	Create(ctx context.Context, audit *entity.TaskAudit) error
}
