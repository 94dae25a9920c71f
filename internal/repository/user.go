package repository

import (
	"context"

	"github.com/hirwaf/task-management-be/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// COALESCE подставляет заглушку тем, кто без аватарки
const userColumns = `id, name, email, password_hash, COALESCE(avatar, '` + entity.DefaultAvatar + `'), is_active, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Avatar,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateWithAuth - создаем пользователя с учетными данными
func (r *UserRepository) CreateWithAuth(ctx context.Context, name, email, passwordHash string) (*entity.User, error) {
	query := `
	INSERT INTO "users" (name, email, password_hash)
	VALUES ($1, $2, $3)
	RETURNING ` + userColumns

	return scanUser(r.db.QueryRow(ctx, query, name, email, passwordHash))
}

// получаем данные по id
func (r *UserRepository) GetById(ctx context.Context, id int) (*entity.User, error) {
	query := `
	SELECT ` + userColumns + `
	FROM "users"
	WHERE id = $1 AND deleted_at IS NULL
	`
	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `
	SELECT ` + userColumns + `
	FROM "users"
	WHERE email = $1 AND deleted_at IS NULL
	`
	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// ListExcept - все пользователи кроме запрашивающего (выбор исполнителей)
func (r *UserRepository) ListExcept(ctx context.Context, exceptID int) ([]entity.User, error) {
	query := `
	SELECT ` + userColumns + `
	FROM "users"
	WHERE id <> $1 AND deleted_at IS NULL
	ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, exceptID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []entity.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}

	return users, rows.Err()
}
