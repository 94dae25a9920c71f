package repository

import (
	"context"

	"github.com/hirwaf/task-management-be/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AttachmentRepository struct {
	db *pgxpool.Pool
}

func NewAttachmentRepository(db *pgxpool.Pool) *AttachmentRepository {
	return &AttachmentRepository{
		db: db,
	}
}

// Create - одна строка вложения на один принятый файл
func (r *AttachmentRepository) Create(ctx context.Context, attachment *entity.Attachment) (*entity.Attachment, error) {
	query := `
	INSERT INTO "attachments" (name, file_path, task_id)
	VALUES ($1, $2, $3)
	RETURNING id, name, file_path, task_id, created_at, updated_at
	`

	var created entity.Attachment
	err := r.db.QueryRow(ctx, query, attachment.Name, attachment.FilePath, attachment.TaskID).Scan(
		&created.ID,
		&created.Name,
		&created.FilePath,
		&created.TaskID,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *AttachmentRepository) GetById(ctx context.Context, id int) (*entity.Attachment, error) {
	query := `
	SELECT id, name, file_path, task_id, created_at, updated_at
	FROM "attachments"
	WHERE id = $1 AND deleted_at IS NULL
	`

	var attachment entity.Attachment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&attachment.ID,
		&attachment.Name,
		&attachment.FilePath,
		&attachment.TaskID,
		&attachment.CreatedAt,
		&attachment.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &attachment, nil
}

func (r *AttachmentRepository) ListByTaskId(ctx context.Context, taskID int) ([]entity.Attachment, error) {
	query := `
	SELECT id, name, file_path, task_id, created_at, updated_at
	FROM "attachments"
	WHERE task_id = $1 AND deleted_at IS NULL
	ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attachments []entity.Attachment
	for rows.Next() {
		var a entity.Attachment
		err := rows.Scan(&a.ID, &a.Name, &a.FilePath, &a.TaskID, &a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			return nil, err
		}
		attachments = append(attachments, a)
	}

	return attachments, rows.Err()
}

// AttachToTask - перевешивает вложение на задачу; повторная привязка
// к той же задаче безвредна
func (r *AttachmentRepository) AttachToTask(ctx context.Context, attachmentID, taskID int) error {
	query := `
	UPDATE "attachments"
	SET task_id = $2, updated_at = CURRENT_TIMESTAMP
	WHERE id = $1 AND deleted_at IS NULL
	`
	tag, err := r.db.Exec(ctx, query, attachmentID, taskID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrAttachmentNotFound
	}
	return nil
}
