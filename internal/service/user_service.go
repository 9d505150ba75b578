package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"rag-platform-server/config"
	"rag-platform-server/internal/model"
	"rag-platform-server/internal/ports"
	"rag-platform-server/internal/security"
)

type UserService struct {
	userRepository ports.UserRepository
	db             *config.Database
}

func NewUserService(userRepository ports.UserRepository, db *config.Database) *UserService {
	return &UserService{
		userRepository: userRepository,
		db:             db,
	}
}

// Register : создаёт активного пользователя с захэшированным паролем
// Занятый login или email -> ErrUserExists (HTTP 400)
func (s *UserService) Register(ctx context.Context, email, username, password string) (*model.User, error) {
	exists, err := s.userRepository.ExistsByLoginOrEmail(ctx, s.db, username, email)
	if err != nil {
		return nil, fmt.Errorf("[UserService] ошибка проверки занятости логина: %w", err)
	}
	if exists {
		return nil, ErrUserExists
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("[UserService] не удалось создать хэш пароля: %w", err)
	}

	user := &model.User{
		UUID:         uuid.New().String(),
		Email:        email,
		Login:        username,
		PasswordHash: hash,
		IsActive:     true,
		IsSuperuser:  false,
	}

	created, err := s.userRepository.CreateUser(ctx, s.db, user)
	if err != nil {
		return nil, fmt.Errorf("[UserService] ошибка создания пользователя: %w", err)
	}

	return created, nil
}
