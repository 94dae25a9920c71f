package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hirwaf/task-management-be/internal/entity"
	"github.com/hirwaf/task-management-be/internal/repository"
)

// MockTaskRepository - мок для ITaskRepository
type MockTaskRepository struct {
	CreateFunc      func(ctx context.Context, ownerID int, req *entity.CreateTaskRequest) (*entity.Task, error)
	GetByTaskIdFunc func(ctx context.Context, taskID, ownerID int) (*entity.Task, error)
	GetByIdFunc     func(ctx context.Context, taskID int) (*entity.Task, error)
	ListFunc        func(ctx context.Context, ownerID int, params *entity.TaskSearchParams) ([]entity.Task, int, error)
	UpdateFunc      func(ctx context.Context, taskID, ownerID int, req *entity.CreateTaskRequest) (int64, error)
	SoftDeleteFunc  func(ctx context.Context, taskID, ownerID int) (int64, error)
	StatsFunc       func(ctx context.Context, ownerID int) (*entity.TaskStats, error)
}

var _ repository.ITaskRepository = (*MockTaskRepository)(nil)

func (m *MockTaskRepository) Create(ctx context.Context, ownerID int, req *entity.CreateTaskRequest) (*entity.Task, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, ownerID, req)
	}
	return nil, nil
}

func (m *MockTaskRepository) GetByTaskId(ctx context.Context, taskID, ownerID int) (*entity.Task, error) {
	if m.GetByTaskIdFunc != nil {
		return m.GetByTaskIdFunc(ctx, taskID, ownerID)
	}
	return nil, nil
}

func (m *MockTaskRepository) GetById(ctx context.Context, taskID int) (*entity.Task, error) {
	if m.GetByIdFunc != nil {
		return m.GetByIdFunc(ctx, taskID)
	}
	return nil, nil
}

func (m *MockTaskRepository) List(ctx context.Context, ownerID int, params *entity.TaskSearchParams) ([]entity.Task, int, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, ownerID, params)
	}
	return nil, 0, nil
}

func (m *MockTaskRepository) Update(ctx context.Context, taskID, ownerID int, req *entity.CreateTaskRequest) (int64, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, taskID, ownerID, req)
	}
	return 0, nil
}

func (m *MockTaskRepository) SoftDelete(ctx context.Context, taskID, ownerID int) (int64, error) {
	if m.SoftDeleteFunc != nil {
		return m.SoftDeleteFunc(ctx, taskID, ownerID)
	}
	return 0, nil
}

func (m *MockTaskRepository) Stats(ctx context.Context, ownerID int) (*entity.TaskStats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx, ownerID)
	}
	return nil, nil
}

// MockAttachmentRepository - мок для IAttachmentRepository
type MockAttachmentRepository struct {
	CreateFunc       func(ctx context.Context, attachment *entity.Attachment) (*entity.Attachment, error)
	GetByIdFunc      func(ctx context.Context, id int) (*entity.Attachment, error)
	ListByTaskIdFunc func(ctx context.Context, taskID int) ([]entity.Attachment, error)
	AttachToTaskFunc func(ctx context.Context, attachmentID, taskID int) error
}

var _ repository.IAttachmentRepository = (*MockAttachmentRepository)(nil)

func (m *MockAttachmentRepository) Create(ctx context.Context, attachment *entity.Attachment) (*entity.Attachment, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, attachment)
	}
	return attachment, nil
}

func (m *MockAttachmentRepository) GetById(ctx context.Context, id int) (*entity.Attachment, error) {
	if m.GetByIdFunc != nil {
		return m.GetByIdFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockAttachmentRepository) ListByTaskId(ctx context.Context, taskID int) ([]entity.Attachment, error) {
	if m.ListByTaskIdFunc != nil {
		return m.ListByTaskIdFunc(ctx, taskID)
	}
	return nil, nil
}

func (m *MockAttachmentRepository) AttachToTask(ctx context.Context, attachmentID, taskID int) error {
	if m.AttachToTaskFunc != nil {
		return m.AttachToTaskFunc(ctx, attachmentID, taskID)
	}
	return nil
}

// MockProjectRepository - мок для IProjectRepository
type MockProjectRepository struct {
	ListFunc func(ctx context.Context) ([]entity.Project, error)
}

var _ repository.IProjectRepository = (*MockProjectRepository)(nil)

func (m *MockProjectRepository) List(ctx context.Context) ([]entity.Project, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

// MockRabbitMQPublisher - мок для RabbitMQPublisher
type MockRabbitMQPublisher struct {
	PublishAuditMessageFunc func(ctx context.Context, message *entity.AuditMessage) error
}

func (m *MockRabbitMQPublisher) PublishAuditMessage(ctx context.Context, message *entity.AuditMessage) error {
	if m.PublishAuditMessageFunc != nil {
		return m.PublishAuditMessageFunc(ctx, message)
	}
	return nil
}

func newTaskService(taskRepo *MockTaskRepository, attachmentRepo *MockAttachmentRepository) *TaskService {
	return NewTaskService(taskRepo, attachmentRepo, &MockProjectRepository{}, &MockRabbitMQPublisher{})
}

// Tests

func TestListTasksDefaultScope(t *testing.T) {
	ctx := context.Background()

	var gotOwner int
	var gotParams *entity.TaskSearchParams
	taskRepo := &MockTaskRepository{
		ListFunc: func(ctx context.Context, ownerID int, params *entity.TaskSearchParams) ([]entity.Task, int, error) {
			gotOwner = ownerID
			gotParams = params
			return []entity.Task{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}}, 2, nil
		},
	}

	service := newTaskService(taskRepo, &MockAttachmentRepository{})

	page, err := service.ListTasks(ctx, 42, &entity.TaskSearchParams{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if gotOwner != 42 {
		t.Errorf("scope владельца потерян: ownerID = %d", gotOwner)
	}
	if gotParams.Drafts {
		t.Error("без явного drafts наружу должны идти только не-черновики")
	}
	if page.Page != entity.DefaultPage || page.Take != entity.DefaultLimit {
		t.Errorf("дефолты пагинации: page=%d take=%d", page.Page, page.Take)
	}
	if page.ItemCount != 2 || page.PageCount != 1 {
		t.Errorf("конверт: itemCount=%d pageCount=%d", page.ItemCount, page.PageCount)
	}
	if page.HasNextPage || page.HasPreviousPage {
		t.Error("на единственной странице не должно быть соседних")
	}
}

func TestListTasksEmptyPageThree(t *testing.T) {
	ctx := context.Background()

	taskRepo := &MockTaskRepository{
		ListFunc: func(ctx context.Context, ownerID int, params *entity.TaskSearchParams) ([]entity.Task, int, error) {
			return nil, 0, nil
		},
	}

	service := newTaskService(taskRepo, &MockAttachmentRepository{})

	page, err := service.ListTasks(ctx, 1, &entity.TaskSearchParams{Page: 3})
	if err != nil {
		t.Fatalf("пустая выдача - не ошибка, got %v", err)
	}

	if page.ItemCount != 0 || page.PageCount != 0 {
		t.Errorf("itemCount=%d pageCount=%d, want 0/0", page.ItemCount, page.PageCount)
	}
	if page.HasNextPage {
		t.Error("hasNextPage должен быть false на пустой выдаче")
	}
	if !page.HasPreviousPage {
		t.Error("hasPreviousPage должен быть true на странице 3")
	}
}

func TestGetStatisticsIndependentCounts(t *testing.T) {
	ctx := context.Background()

	// Сценарий: A(не done, не draft), B(done), C(draft).
	// Черновики входят в total/completed/notCompleted - правило зафиксировано.
	taskRepo := &MockTaskRepository{
		StatsFunc: func(ctx context.Context, ownerID int) (*entity.TaskStats, error) {
			if ownerID != 5 {
				t.Errorf("scope владельца потерян: ownerID = %d", ownerID)
			}
			return &entity.TaskStats{TotalCount: 3, CompletedCount: 1, NotCompletedCount: 2, DraftCount: 1}, nil
		},
	}

	service := newTaskService(taskRepo, &MockAttachmentRepository{})

	stats, err := service.GetStatistics(ctx, 5)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if stats.TotalCount != 3 || stats.CompletedCount != 1 || stats.NotCompletedCount != 2 || stats.DraftCount != 1 {
		t.Errorf("неверная статистика: %+v", stats)
	}
	if stats.CompletedCount+stats.NotCompletedCount != stats.TotalCount {
		t.Error("на фиксированном снимке done + not done = total")
	}
}

func TestCreateTaskSuccess(t *testing.T) {
	ctx := context.Background()
	mockTask := &entity.Task{
		ID:        1,
		Title:     "Test Task",
		Priority:  entity.PriorityNormal,
		OwnerId:   1,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	taskRepo := &MockTaskRepository{
		CreateFunc: func(ctx context.Context, ownerID int, req *entity.CreateTaskRequest) (*entity.Task, error) {
			if ownerID != 1 {
				t.Errorf("владелец должен браться из контекста вызова, got %d", ownerID)
			}
			return mockTask, nil
		},
	}

	service := newTaskService(taskRepo, &MockAttachmentRepository{})

	result, err := service.CreateTask(ctx, 1, &entity.CreateTaskRequest{Title: "Test Task"}, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.ID != mockTask.ID {
		t.Errorf("Expected task ID %d, got %d", mockTask.ID, result.ID)
	}
}

func TestCreateTaskEmptyTitle(t *testing.T) {
	ctx := context.Background()

	service := newTaskService(&MockTaskRepository{}, &MockAttachmentRepository{})

	_, err := service.CreateTask(ctx, 1, &entity.CreateTaskRequest{}, nil)
	if err != entity.ErrInvalidTaskData {
		t.Errorf("Expected ErrInvalidTaskData, got %v", err)
	}
}

func TestCreateTaskAttachmentFailurePropagates(t *testing.T) {
	ctx := context.Background()
	saveErr := errors.New("disk full")

	taskRepo := &MockTaskRepository{
		CreateFunc: func(ctx context.Context, ownerID int, req *entity.CreateTaskRequest) (*entity.Task, error) {
			return &entity.Task{ID: 1, Title: "T", OwnerId: 1}, nil
		},
	}
	attachmentRepo := &MockAttachmentRepository{
		CreateFunc: func(ctx context.Context, attachment *entity.Attachment) (*entity.Attachment, error) {
			if attachment.Name == "b.pdf" {
				return nil, saveErr
			}
			return attachment, nil
		},
	}

	service := newTaskService(taskRepo, attachmentRepo)

	files := []entity.UploadedFile{
		{Name: "a.png", FilePath: "/tmp/a"},
		{Name: "b.pdf", FilePath: "/tmp/b"},
		{Name: "c.jpg", FilePath: "/tmp/c"},
	}

	_, err := service.CreateTask(ctx, 1, &entity.CreateTaskRequest{Title: "T"}, files)
	if err != saveErr {
		t.Errorf("ошибка сохранения вложения должна подняться наверх, got %v", err)
	}
}

func TestUpdateTaskSuccess(t *testing.T) {
	ctx := context.Background()
	updated := &entity.Task{ID: 1, Title: "New Title", OwnerId: 1}

	taskRepo := &MockTaskRepository{
		UpdateFunc: func(ctx context.Context, taskID, ownerID int, req *entity.CreateTaskRequest) (int64, error) {
			return 1, nil
		},
		GetByTaskIdFunc: func(ctx context.Context, taskID, ownerID int) (*entity.Task, error) {
			return updated, nil
		},
	}

	service := newTaskService(taskRepo, &MockAttachmentRepository{})

	result, err := service.UpdateTask(ctx, 1, 1, &entity.CreateTaskRequest{Title: "New Title"}, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Title != updated.Title {
		t.Errorf("Expected title %s, got %s", updated.Title, result.Title)
	}
}

func TestUpdateTaskWrongOwner(t *testing.T) {
	ctx := context.Background()

	fetched := false
	taskRepo := &MockTaskRepository{
		UpdateFunc: func(ctx context.Context, taskID, ownerID int, req *entity.CreateTaskRequest) (int64, error) {
			return 0, nil // чужая или несуществующая задача: ноль строк
		},
		GetByTaskIdFunc: func(ctx context.Context, taskID, ownerID int) (*entity.Task, error) {
			fetched = true
			return nil, nil
		},
	}

	service := newTaskService(taskRepo, &MockAttachmentRepository{})

	result, err := service.UpdateTask(ctx, 999, 1, &entity.CreateTaskRequest{Title: "X"}, nil)
	if err != entity.ErrUpdateFailed {
		t.Errorf("Expected ErrUpdateFailed, got %v", err)
	}
	if result != nil {
		t.Errorf("Expected nil task, got %v", result)
	}
	if fetched {
		t.Error("после отказа не должно быть повторного чтения")
	}
}

func TestUpdateTaskConcurrentDelete(t *testing.T) {
	ctx := context.Background()

	taskRepo := &MockTaskRepository{
		UpdateFunc: func(ctx context.Context, taskID, ownerID int, req *entity.CreateTaskRequest) (int64, error) {
			return 1, nil
		},
		GetByTaskIdFunc: func(ctx context.Context, taskID, ownerID int) (*entity.Task, error) {
			return nil, nil // задачу удалили между апдейтом и чтением
		},
	}

	service := newTaskService(taskRepo, &MockAttachmentRepository{})

	_, err := service.UpdateTask(ctx, 1, 1, &entity.CreateTaskRequest{Title: "X"}, nil)
	if err != entity.ErrTaskNotFound {
		t.Errorf("Expected ErrTaskNotFound, got %v", err)
	}
}

func TestDeleteTaskNotOwned(t *testing.T) {
	ctx := context.Background()

	taskRepo := &MockTaskRepository{
		SoftDeleteFunc: func(ctx context.Context, taskID, ownerID int) (int64, error) {
			return 0, nil
		},
	}

	service := newTaskService(taskRepo, &MockAttachmentRepository{})

	if err := service.DeleteTask(ctx, 5, 1); err != entity.ErrTaskNotFound {
		t.Errorf("Expected ErrTaskNotFound, got %v", err)
	}
}

func TestGetTaskNotOwned(t *testing.T) {
	ctx := context.Background()

	service := newTaskService(&MockTaskRepository{}, &MockAttachmentRepository{})

	_, err := service.GetTask(ctx, 5, 1)
	if err != entity.ErrTaskNotFound {
		t.Errorf("чужая задача наружу - not found, got %v", err)
	}
}

func TestAssociateAttachment(t *testing.T) {
	ctx := context.Background()

	t.Run("задача не найдена", func(t *testing.T) {
		service := newTaskService(&MockTaskRepository{}, &MockAttachmentRepository{})
		if err := service.AssociateAttachment(ctx, 1, 2); err != entity.ErrTaskNotFound {
			t.Errorf("Expected ErrTaskNotFound, got %v", err)
		}
	})

	t.Run("вложение не найдено", func(t *testing.T) {
		taskRepo := &MockTaskRepository{
			GetByIdFunc: func(ctx context.Context, taskID int) (*entity.Task, error) {
				return &entity.Task{ID: taskID}, nil
			},
		}
		service := newTaskService(taskRepo, &MockAttachmentRepository{})
		if err := service.AssociateAttachment(ctx, 1, 2); err != entity.ErrAttachmentNotFound {
			t.Errorf("Expected ErrAttachmentNotFound, got %v", err)
		}
	})

	t.Run("повторная привязка безвредна", func(t *testing.T) {
		taskRepo := &MockTaskRepository{
			GetByIdFunc: func(ctx context.Context, taskID int) (*entity.Task, error) {
				return &entity.Task{ID: taskID}, nil
			},
		}
		attached := false
		attachmentRepo := &MockAttachmentRepository{
			GetByIdFunc: func(ctx context.Context, id int) (*entity.Attachment, error) {
				return &entity.Attachment{ID: id, TaskID: 1}, nil
			},
			AttachToTaskFunc: func(ctx context.Context, attachmentID, taskID int) error {
				attached = true
				return nil
			},
		}
		service := newTaskService(taskRepo, attachmentRepo)
		if err := service.AssociateAttachment(ctx, 1, 2); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if attached {
			t.Error("уже привязанное вложение не должно перепривязываться")
		}
	})

	t.Run("привязка выполняется", func(t *testing.T) {
		taskRepo := &MockTaskRepository{
			GetByIdFunc: func(ctx context.Context, taskID int) (*entity.Task, error) {
				return &entity.Task{ID: taskID}, nil
			},
		}
		var gotAttachment, gotTask int
		attachmentRepo := &MockAttachmentRepository{
			GetByIdFunc: func(ctx context.Context, id int) (*entity.Attachment, error) {
				return &entity.Attachment{ID: id, TaskID: 99}, nil
			},
			AttachToTaskFunc: func(ctx context.Context, attachmentID, taskID int) error {
				gotAttachment, gotTask = attachmentID, taskID
				return nil
			},
		}
		service := newTaskService(taskRepo, attachmentRepo)
		if err := service.AssociateAttachment(ctx, 1, 2); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if gotAttachment != 2 || gotTask != 1 {
			t.Errorf("привязка %d->%d, want 2->1", gotAttachment, gotTask)
		}
	})
}
