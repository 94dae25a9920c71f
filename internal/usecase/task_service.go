package usecase

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/hirwaf/task-management-be/internal/entity"
	"github.com/hirwaf/task-management-be/internal/repository"
)

// RabbitMQPublisher интерфейс для публикации в RabbitMQ
type RabbitMQPublisher interface {
	PublishAuditMessage(ctx context.Context, message *entity.AuditMessage) error
}

// Одновременно сохраняем не больше стольких вложений одного батча
const attachmentConcurrency = 3

type TaskService struct {
	taskRepo       repository.ITaskRepository
	attachmentRepo repository.IAttachmentRepository
	projectRepo    repository.IProjectRepository
	rabbitMQ       RabbitMQPublisher
}

func NewTaskService(
	taskRepo repository.ITaskRepository,
	attachmentRepo repository.IAttachmentRepository,
	projectRepo repository.IProjectRepository,
	rabbitMQ RabbitMQPublisher,
) *TaskService {
	return &TaskService{
		taskRepo:       taskRepo,
		attachmentRepo: attachmentRepo,
		projectRepo:    projectRepo,
		rabbitMQ:       rabbitMQ,
	}
}

// ListTasks - страница задач владельца с фильтрами и сортировкой.
// Пустая выдача - валидный результат, не ошибка.
func (s *TaskService) ListTasks(ctx context.Context, userID int, params *entity.TaskSearchParams) (*entity.Page, error) {
	tasks, itemCount, err := s.taskRepo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}
	return entity.NewPage(params.PageOrDefault(), params.LimitOrDefault(), itemCount, tasks), nil
}

func (s *TaskService) GetStatistics(ctx context.Context, userID int) (*entity.TaskStats, error) {
	return s.taskRepo.Stats(ctx, userID)
}

func (s *TaskService) GetTask(ctx context.Context, taskID, userID int) (*entity.Task, error) {
	task, err := s.taskRepo.GetByTaskId(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		// чужая задача и несуществующая наружу неразличимы
		return nil, entity.ErrTaskNotFound
	}

	attachments, err := s.attachmentRepo.ListByTaskId(ctx, task.ID)
	if err != nil {
		return nil, err
	}
	task.Attachments = attachments
	return task, nil
}

func (s *TaskService) ListProjects(ctx context.Context) ([]entity.Project, error) {
	return s.projectRepo.List(ctx)
}

// CreateTask - создание задачи с привязкой принятых файлов.
// Ошибка сохранения любого вложения поднимается наверх.
func (s *TaskService) CreateTask(ctx context.Context, userID int, req *entity.CreateTaskRequest, files []entity.UploadedFile) (*entity.Task, error) {
	if req.Title == "" {
		return nil, entity.ErrInvalidTaskData
	}

	task, err := s.taskRepo.Create(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	if err := s.saveAttachments(ctx, task.ID, files); err != nil {
		return nil, err
	}

	s.sendAuditMessage(entity.ActionCreate, userID, task.ID, nil, task)

	return task, nil
}

// UpdateTask - замена фиксированного набора полей строго в scope
// владельца. Ноль затронутых строк (чужой или несуществующий id) -
// отказ без мутации. Повторное чтение после апдейта может проиграть
// гонку с конкурентным удалением, тогда задача уже не найдена.
func (s *TaskService) UpdateTask(ctx context.Context, taskID, userID int, req *entity.CreateTaskRequest, files []entity.UploadedFile) (*entity.Task, error) {
	affected, err := s.taskRepo.Update(ctx, taskID, userID, req)
	if err != nil {
		return nil, err
	}
	if affected != 1 {
		return nil, entity.ErrUpdateFailed
	}

	task, err := s.taskRepo.GetByTaskId(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, entity.ErrTaskNotFound
	}

	if err := s.saveAttachments(ctx, task.ID, files); err != nil {
		return nil, err
	}

	s.sendAuditMessage(entity.ActionUpdate, userID, taskID, nil, task)

	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, taskID, userID int) error {
	affected, err := s.taskRepo.SoftDelete(ctx, taskID, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrTaskNotFound
	}

	s.sendAuditMessage(entity.ActionDelete, userID, taskID, nil, nil)

	return nil
}

// AssociateAttachment - явная привязка существующего вложения к
// существующей задаче. Падает, если любой из id не нашелся.
func (s *TaskService) AssociateAttachment(ctx context.Context, taskID, attachmentID int) error {
	task, err := s.taskRepo.GetById(ctx, taskID)
	if err != nil {
		return err
	}
	if task == nil {
		return entity.ErrTaskNotFound
	}

	attachment, err := s.attachmentRepo.GetById(ctx, attachmentID)
	if err != nil {
		return err
	}
	if attachment == nil {
		return entity.ErrAttachmentNotFound
	}

	if attachment.TaskID == task.ID {
		// уже привязано
		return nil
	}

	return s.attachmentRepo.AttachToTask(ctx, attachment.ID, task.ID)
}

// saveAttachments сохраняет батч файлов с ограниченной параллельностью.
// Порядок строк внутри батча не гарантируется; первая ошибка
// запоминается и возвращается после завершения всех горутин.
func (s *TaskService) saveAttachments(ctx context.Context, taskID int, files []entity.UploadedFile) error {
	if len(files) == 0 {
		return nil
	}

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, attachmentConcurrency)

	var mu sync.Mutex
	var firstErr error

	for _, file := range files {
		wg.Add(1)
		go func(f entity.UploadedFile) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			_, err := s.attachmentRepo.Create(ctx, &entity.Attachment{
				Name:     f.Name,
				FilePath: f.FilePath,
				TaskID:   taskID,
			})
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}(file)
	}

	wg.Wait()
	return firstErr
}

// Вспомогательный метод для отправки аудита
func (s *TaskService) sendAuditMessage(action entity.ActionType, userID, taskID int, oldTask, newTask *entity.Task) {
	auditMsg := &entity.AuditMessage{
		Action:    action,
		UserID:    userID,
		EntityID:  taskID,
		Timestamp: time.Now(),
	}

	if oldTask != nil {
		auditMsg.OldValues = taskValues(oldTask)
	}
	if newTask != nil {
		auditMsg.NewValues = taskValues(newTask)
	}

	// Асинхронная отправка в RabbitMQ
	go func() {
		if err := s.rabbitMQ.PublishAuditMessage(context.Background(), auditMsg); err != nil {
			log.Printf("❌ Ошибка отправки аудита в RabbitMQ: %v", err)
		}
	}()
}

func taskValues(task *entity.Task) map[string]interface{} {
	values := map[string]interface{}{
		"title":    task.Title,
		"priority": task.Priority,
		"is_draft": task.IsDraft,
		"is_done":  task.IsDone,
		"owner_id": task.OwnerId,
	}
	if task.Description != nil {
		values["description"] = *task.Description
	}
	return values
}

// MarshalValues - map аудита в JSON-строку для хранения
func MarshalValues(values map[string]interface{}) string {
	if len(values) == 0 {
		return ""
	}
	b, err := json.Marshal(values)
	if err != nil {
		return ""
	}
	return string(b)
}
