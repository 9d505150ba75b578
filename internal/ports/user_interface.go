package ports

import (
	"context"

	"github.com/jmoiron/sqlx"

	"rag-platform-server/internal/model"
)

type UserRepository interface {
	CreateUser(ctx context.Context, exec sqlx.ExtContext, user *model.User) (*model.User, error)
	FindByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.User, error)
	FindByLoginOrEmail(ctx context.Context, exec sqlx.ExtContext, login string) (*model.User, error)
	ExistsByLoginOrEmail(ctx context.Context, exec sqlx.ExtContext, login, email string) (bool, error)
}

type UserService interface {
	Register(ctx context.Context, email, username, password string) (*model.User, error)
}
