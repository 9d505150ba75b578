package service

import (
	"context"
	"fmt"
	"log"

	"rag-platform-server/config"
	"rag-platform-server/internal/model"
	"rag-platform-server/internal/ports"
	"rag-platform-server/internal/security"
)

type AuthenticationService struct {
	userRepository ports.UserRepository
	jwtService     ports.JWTServiceInterface
	db             *config.Database
}

func NewAuthenticationService(
	userRepository ports.UserRepository,
	jwtService ports.JWTServiceInterface,
	db *config.Database,
) *AuthenticationService {
	return &AuthenticationService{
		userRepository: userRepository,
		jwtService:     jwtService,
		db:             db,
	}
}

// Login : принимает в поле login как username, так и email
// Неверный логин и неверный пароль наружу неразличимы: ErrInvalidCredentials
func (s *AuthenticationService) Login(ctx context.Context, login, password string) (string, error) {
	user, err := s.userRepository.FindByLoginOrEmail(ctx, s.db, login)
	if err != nil {
		log.Printf("[AuthService] пользователь %s не найден: %v", login, err)
		return "", ErrInvalidCredentials
	}

	if !security.CheckPassword(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	if !user.IsActive {
		return "", ErrInactiveUser
	}

	token, err := s.jwtService.GenerateAccessToken(user.UUID)
	if err != nil {
		return "", fmt.Errorf("[AuthService] ошибка генерации токена: %w", err)
	}

	return token, nil
}

// CurrentUser : профиль пользователя по UUID из claims
func (s *AuthenticationService) CurrentUser(ctx context.Context, userUUID string) (*model.User, error) {
	user, err := s.userRepository.FindByUUID(ctx, s.db, userUUID)
	if err != nil {
		return nil, fmt.Errorf("[AuthService] пользователь не найден: %w", err)
	}
	return user, nil
}
