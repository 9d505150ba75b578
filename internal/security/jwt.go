package security

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jmoiron/sqlx"

	"rag-platform-server/config"
	"rag-platform-server/internal/model"
)

type contextKey string

const (
	UserContextKey contextKey = "user"

	defaultAccessTokenTTL = 30 * time.Minute
)

type Claims struct {
	jwt.RegisteredClaims
}

type JWTService struct {
	*config.JWTConfig
}

func NewJWTService(cfg *config.JWTConfig) *JWTService {
	return &JWTService{cfg}
}

// GenerateAccessToken : выпускает подписанный HS256 токен с exp = now + ttl
// Если ttl не передан, берётся значение из конфигурации (по умолчанию 30 минут)
func (service *JWTService) GenerateAccessToken(userUUID string, ttl ...time.Duration) (string, error) {
	duration := defaultAccessTokenTTL
	if service.AccessTokenTTL != "" {
		parsed, err := time.ParseDuration(service.AccessTokenTTL)
		if err != nil {
			return "", fmt.Errorf("ошибка парсинга access_token_ttl: %w", err)
		}
		duration = parsed
	}
	if len(ttl) > 0 {
		duration = ttl[0]
	}

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userUUID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "rag-platform-server",
		},
	}

	jwtToken := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	accessToken, err := jwtToken.SignedString([]byte(service.SecretKey))
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}

	return accessToken, nil
}

// ParseAccessToken : возвращает claims либо nil
// nil означает "не аутентифицирован": битая подпись, чужой алгоритм,
// повреждённые claims или истёкший срок. Ошибки наружу не отдаются,
// вызывающий обязан трактовать nil единообразно
func (service *JWTService) ParseAccessToken(tokenStr string) *Claims {
	claims := &Claims{}

	jwtToken, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Header["alg"] != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("неверный способ подписи токена: %v", token.Header["alg"])
		}
		return []byte(service.SecretKey), nil
	})

	if err != nil || !jwtToken.Valid || claims.Subject == "" {
		return nil
	}

	return claims
}

// userFinder : выборка пользователя для проверки активности при аутентификации
type userFinder interface {
	FindByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.User, error)
}

// JWTMiddleware : единообразный 401 на любую проблему с токеном или пользователем,
// без уточнения причины в ответе
func JWTMiddleware(jwtService *JWTService, users userFinder, db *config.Database) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authorizationHeader := request.Header.Get("Authorization")
			if !strings.HasPrefix(authorizationHeader, "Bearer ") {
				unauthorized(writer)
				return
			}

			token := strings.TrimPrefix(authorizationHeader, "Bearer ")

			claims := jwtService.ParseAccessToken(token)
			if claims == nil {
				unauthorized(writer)
				return
			}

			user, err := users.FindByUUID(request.Context(), db, claims.Subject)
			if err != nil || user == nil || !user.IsActive {
				unauthorized(writer)
				return
			}

			req := request.WithContext(context.WithValue(request.Context(), UserContextKey, claims))
			next.ServeHTTP(writer, req)
		})
	}
}

func unauthorized(writer http.ResponseWriter) {
	writer.Header().Set("WWW-Authenticate", "Bearer")
	http.Error(writer, "unauthorized", http.StatusUnauthorized)
}

func GetClaimsFromContext(ctx context.Context) (*Claims, error) {
	claims, ok := ctx.Value(UserContextKey).(*Claims)
	if !ok || claims == nil {
		return nil, fmt.Errorf("пользователь не авторизован")
	}
	return claims, nil
}
