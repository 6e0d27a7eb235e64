package repositories

import (
	"context"
	"errors"
	"fmt"

	"velodrive/internal/common"
	"velodrive/internal/models"

	"github.com/jackc/pgx/v5"
)

type UserRepository interface {
	GetByLogin(ctx context.Context, login string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type userRepo struct {
	db Database
}

func NewUserRepo(db Database) UserRepository {
	return &userRepo{db: db}
}

const userSelectSQL = `
		SELECT u.id, u.full_name, u.login, u.password_plain, r.code AS role_code, r.name AS role_name
		FROM users u
		INNER JOIN roles r ON r.id = u.role_id
	`

func (r *userRepo) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	return r.getOne(ctx, userSelectSQL+`WHERE u.login = $1 LIMIT 1`, login)
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, userSelectSQL+`WHERE u.id = $1`, id)
}

func (r *userRepo) getOne(ctx context.Context, sql string, arg interface{}) (*models.User, error) {
	var user models.User
	err := r.db.QueryRow(ctx, sql, arg).Scan(
		&user.ID, &user.FullName, &user.Login, &user.PasswordPlain, &user.RoleCode, &user.RoleName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError("User")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}
