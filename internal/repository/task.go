package repository

import (
	"context"
	"strconv"

	"github.com/hirwaf/task-management-be/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{
		db: db,
	}
}

// total_attachments - вычисляемая аннотация, в таблице её нет
const taskColumns = `
	t.id, t.title, t.description, t.priority, t.start_date, t.end_date,
	t.is_draft, t.is_done, t.user_id, t.created_at, t.updated_at,
	(SELECT COUNT(*) FROM attachments a WHERE a.task_id = t.id AND a.deleted_at IS NULL) AS total_attachments`

func scanTask(row pgx.Row) (*entity.Task, error) {
	var task entity.Task
	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Priority,
		&task.Start,
		&task.End,
		&task.IsDraft,
		&task.IsDone,
		&task.OwnerId,
		&task.CreatedAt,
		&task.UpdatedAt,
		&task.TotalAttachments,
	)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) Create(ctx context.Context, ownerID int, req *entity.CreateTaskRequest) (*entity.Task, error) {

	query := `
	INSERT INTO "tasks" (title, description, priority, start_date, end_date, is_draft, user_id)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING id, title, description, priority, start_date, end_date,
	          is_draft, is_done, user_id, created_at, updated_at, 0
	`

	priority := req.Priority
	if priority == "" {
		priority = entity.PriorityNormal
	}

	task, err := scanTask(r.db.QueryRow(ctx, query,
		req.Title,
		req.Description,
		priority,
		req.Start,
		req.End,
		req.IsDraft,
		ownerID,
	))
	if err != nil {
		return nil, err
	}

	// Несуществующие id исполнителей и проектов молча пропускаются
	if len(req.Assignees) > 0 {
		_, err = r.db.Exec(ctx, `
		INSERT INTO task_assignees (task_id, user_id)
		SELECT $1, u.id FROM users u WHERE u.id = ANY($2) AND u.deleted_at IS NULL
		ON CONFLICT DO NOTHING`, task.ID, req.Assignees)
		if err != nil {
			return nil, err
		}
	}
	if len(req.Projects) > 0 {
		_, err = r.db.Exec(ctx, `
		INSERT INTO task_projects (task_id, project_id)
		SELECT $1, p.id FROM projects p WHERE p.id = ANY($2) AND p.deleted_at IS NULL
		ON CONFLICT DO NOTHING`, task.ID, req.Projects)
		if err != nil {
			return nil, err
		}
	}

	return task, nil
}

// GetByTaskId - задача в scope владельца; чужой или несуществующий id
// неразличимы, оба дают nil
func (r *TaskRepository) GetByTaskId(ctx context.Context, taskID, ownerID int) (*entity.Task, error) {
	query := `
	SELECT ` + taskColumns + `
	FROM "tasks" t
	WHERE t.id = $1 AND t.user_id = $2 AND t.deleted_at IS NULL
	`
	task, err := scanTask(r.db.QueryRow(ctx, query, taskID, ownerID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return task, nil
}

func (r *TaskRepository) GetById(ctx context.Context, taskID int) (*entity.Task, error) {
	query := `
	SELECT ` + taskColumns + `
	FROM "tasks" t
	WHERE t.id = $1 AND t.deleted_at IS NULL
	`
	task, err := scanTask(r.db.QueryRow(ctx, query, taskID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return task, nil
}

// List - список задач с фильтрацией, сортировкой и пагинацией.
// Возвращает страницу строк и itemCount по полному (до LIMIT) фильтру.
func (r *TaskRepository) List(ctx context.Context, ownerID int, params *entity.TaskSearchParams) ([]entity.Task, int, error) {
	filter, args := buildTaskFilter(ownerID, params)

	var itemCount int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM "tasks" t WHERE `+filter, args...).Scan(&itemCount)
	if err != nil {
		return nil, 0, err
	}

	limit := params.LimitOrDefault()
	offset := (params.PageOrDefault() - 1) * limit

	query := `
	SELECT ` + taskColumns + `
	FROM "tasks" t
	WHERE ` + filter + `
	ORDER BY ` + resolveOrder(params.SortBy, params.Order) + `
	LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)

	rows, err := r.db.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var tasks []entity.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, 0, err
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return tasks, itemCount, nil
}

// Update - замена фиксированного набора полей строго в scope владельца.
// Возвращает число затронутых строк, владельца не меняет.
func (r *TaskRepository) Update(ctx context.Context, taskID, ownerID int, req *entity.CreateTaskRequest) (int64, error) {
	priority := req.Priority
	if priority == "" {
		priority = entity.PriorityNormal
	}

	query := `
	UPDATE "tasks"
	SET title = $1, description = $2, priority = $3, start_date = $4,
	    end_date = $5, is_draft = $6, updated_at = CURRENT_TIMESTAMP
	WHERE id = $7 AND user_id = $8 AND deleted_at IS NULL
	`
	tag, err := r.db.Exec(ctx, query,
		req.Title,
		req.Description,
		priority,
		req.Start,
		req.End,
		req.IsDraft,
		taskID,
		ownerID,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// SoftDelete - помечает deleted_at, строка остаётся в БД
func (r *TaskRepository) SoftDelete(ctx context.Context, taskID, ownerID int) (int64, error) {
	query := `
	UPDATE "tasks"
	SET deleted_at = CURRENT_TIMESTAMP
	WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
	`
	tag, err := r.db.Exec(ctx, query, taskID, ownerID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Stats - четыре независимых count'а по одному и тому же базовому
// scope владельца. Каждый считается отдельным запросом, условия между
// собой не накапливаются. Черновики входят в total/completed/notCompleted.
func (r *TaskRepository) Stats(ctx context.Context, ownerID int) (*entity.TaskStats, error) {
	base := `SELECT COUNT(*) FROM "tasks" t WHERE t.deleted_at IS NULL AND t.user_id = $1`

	var stats entity.TaskStats
	counts := []struct {
		cond string
		dest *int
	}{
		{"", &stats.TotalCount},
		{" AND t.is_done = true", &stats.CompletedCount},
		{" AND t.is_done = false", &stats.NotCompletedCount},
		{" AND t.is_draft = true", &stats.DraftCount},
	}
	for _, c := range counts {
		if err := r.db.QueryRow(ctx, base+c.cond, ownerID).Scan(c.dest); err != nil {
			return nil, err
		}
	}
	return &stats, nil
}
