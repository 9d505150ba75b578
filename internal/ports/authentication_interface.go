package ports

import (
	"context"

	"rag-platform-server/internal/model"
)

type AuthenticationService interface {
	Login(ctx context.Context, login, password string) (string, error)
	CurrentUser(ctx context.Context, userUUID string) (*model.User, error)
}
