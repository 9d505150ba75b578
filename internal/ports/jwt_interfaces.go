package ports

import (
	"time"

	"rag-platform-server/internal/security"
)

type JWTServiceInterface interface {
	GenerateAccessToken(userUUID string, ttl ...time.Duration) (string, error)
	ParseAccessToken(tokenStr string) *security.Claims
}
