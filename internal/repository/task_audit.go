package repository

import (
	"context"

	"github.com/hirwaf/task-management-be/internal/entity"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TaskAuditRepository struct {
	db *pgxpool.Pool
}

func NewTaskAuditRepository(db *pgxpool.Pool) *TaskAuditRepository {
	return &TaskAuditRepository{
		db: db,
	}
}

func (r *TaskAuditRepository) Create(ctx context.Context, audit *entity.TaskAudit) error {
	query := `
	INSERT INTO "task_audits" (action, user_id, entity_id, old_values, new_values, changes)
	VALUES ($1, $2, $3, NULLIF($4, '')::jsonb, NULLIF($5, '')::jsonb, NULLIF($6, '')::jsonb)
	`
	_, err := r.db.Exec(ctx, query,
		audit.Action,
		audit.UserID,
		audit.EntityID,
		audit.OldValues,
		audit.NewValues,
		audit.Changes,
	)
	return err
}
