package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"rag-platform-server/config"
	"rag-platform-server/internal/model"
	"rag-platform-server/internal/util"
)

type UserRepository struct {
	*config.Database
}

func NewUserRepository(database *config.Database) *UserRepository {
	return &UserRepository{database}
}

// CreateUser : сохраняет нового пользователя
func (r *UserRepository) CreateUser(ctx context.Context, exec sqlx.ExtContext, user *model.User) (*model.User, error) {
	query := `
	INSERT INTO users (uuid, email, login, password_hash, is_active, is_superuser)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING uuid, email, login, password_hash, is_active, is_superuser, created_at, updated_at
	`

	createdUser := &model.User{}
	err := exec.QueryRowxContext(ctx, query,
		user.UUID,
		user.Email,
		user.Login,
		user.PasswordHash,
		user.IsActive,
		user.IsSuperuser,
	).StructScan(createdUser)

	if err != nil {
		return nil, util.LogError("[UserRepo] ошибка вставки данных в БД", err)
	}

	return createdUser, nil
}

// FindByUUID : ищет пользователя по UUID
func (r *UserRepository) FindByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.User, error) {
	query := `
	SELECT uuid, email, login, password_hash, is_active, is_superuser, created_at, updated_at
	FROM users WHERE uuid = $1
	`
	var user model.User
	err := sqlx.GetContext(ctx, exec, &user, query, uuid)
	if err != nil {
		return nil, util.LogError("[UserRepo] не удалось найти пользователя в БД", err)
	}
	return &user, nil
}

// FindByLoginOrEmail : ищет пользователя по login или email
// Форма логина принимает и то, и другое в одном поле
func (r *UserRepository) FindByLoginOrEmail(ctx context.Context, exec sqlx.ExtContext, login string) (*model.User, error) {
	query := `
	SELECT uuid, email, login, password_hash, is_active, is_superuser, created_at, updated_at
	FROM users WHERE login = $1 OR email = $1
	`
	var user model.User
	err := sqlx.GetContext(ctx, exec, &user, query, login)
	if err != nil {
		return nil, util.LogError("[UserRepo] не удалось найти пользователя по login", err)
	}
	return &user, nil
}

// ExistsByLoginOrEmail : проверяет занятость login или email
func (r *UserRepository) ExistsByLoginOrEmail(ctx context.Context, exec sqlx.ExtContext, login, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE login = $1 OR email = $2)`
	err := sqlx.GetContext(ctx, exec, &exists, query, login, email)
	if err != nil {
		return false, util.LogError("[UserRepo] ошибка проверки существования пользователя", err)
	}
	return exists, nil
}
