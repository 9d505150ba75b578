package security_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rag-platform-server/config"
	"rag-platform-server/internal/model"
	"rag-platform-server/internal/security"
)

func newTestJWTService() *security.JWTService {
	return security.NewJWTService(&config.JWTConfig{
		SecretKey:      "test-secret-key",
		AccessTokenTTL: "30m",
	})
}

func TestGenerateAndParseAccessToken(t *testing.T) {
	svc := newTestJWTService()

	token, err := svc.GenerateAccessToken("user-uuid-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims := svc.ParseAccessToken(token)
	require.NotNil(t, claims)
	assert.Equal(t, "user-uuid-1", claims.Subject)
	assert.Equal(t, "rag-platform-server", claims.Issuer)

	// exp примерно через 30 минут
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), claims.ExpiresAt.Time, time.Minute)
}

func TestParseAccessToken_ReturnsNil(t *testing.T) {
	svc := newTestJWTService()

	expired, err := svc.GenerateAccessToken("user-uuid-1", -time.Minute)
	require.NoError(t, err)

	otherSecret := security.NewJWTService(&config.JWTConfig{SecretKey: "another-secret"})
	foreign, err := otherSecret.GenerateAccessToken("user-uuid-1")
	require.NoError(t, err)

	// токен с другим алгоритмом подписи, но тем же секретом
	hs512 := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "user-uuid-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	wrongAlg, err := hs512.SignedString([]byte("test-secret-key"))
	require.NoError(t, err)

	// токен без subject
	empty := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	noSubject, err := empty.SignedString([]byte("test-secret-key"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"Expired token", expired},
		{"Wrong secret", foreign},
		{"Wrong algorithm", wrongAlg},
		{"No subject", noSubject},
		{"Garbage", "not.a.token"},
		{"Empty string", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, svc.ParseAccessToken(tt.token))
		})
	}
}

func TestGenerateAccessToken_BadTTLConfig(t *testing.T) {
	svc := security.NewJWTService(&config.JWTConfig{
		SecretKey:      "test-secret-key",
		AccessTokenTTL: "thirty minutes",
	})

	_, err := svc.GenerateAccessToken("user-uuid-1")
	require.Error(t, err)
}

func TestGetClaimsFromContext(t *testing.T) {
	claims := &security.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "user-uuid-1"}}
	ctx := context.WithValue(context.Background(), security.UserContextKey, claims)

	got, err := security.GetClaimsFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "user-uuid-1", got.Subject)

	_, err = security.GetClaimsFromContext(context.Background())
	require.Error(t, err)
}

// stubUserFinder : отдаёт заранее заданных пользователей по UUID
type stubUserFinder struct {
	users map[string]*model.User
}

func (s *stubUserFinder) FindByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.User, error) {
	user, ok := s.users[uuid]
	if !ok {
		return nil, errors.New("user not found")
	}
	return user, nil
}

func TestJWTMiddleware(t *testing.T) {
	svc := newTestJWTService()
	db := &config.Database{}

	finder := &stubUserFinder{users: map[string]*model.User{
		"active-user":   {UUID: "active-user", IsActive: true},
		"inactive-user": {UUID: "inactive-user", IsActive: false},
	}}

	validToken, err := svc.GenerateAccessToken("active-user")
	require.NoError(t, err)
	inactiveToken, err := svc.GenerateAccessToken("inactive-user")
	require.NoError(t, err)
	ghostToken, err := svc.GenerateAccessToken("ghost-user")
	require.NoError(t, err)

	var gotClaims *security.Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims, _ = security.GetClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	middleware := security.JWTMiddleware(svc, finder, db)

	tests := []struct {
		name           string
		authorization  string
		expectedStatus int
	}{
		{"Valid token and active user", "Bearer " + validToken, http.StatusOK},
		{"Inactive user", "Bearer " + inactiveToken, http.StatusUnauthorized},
		{"Unknown user", "Bearer " + ghostToken, http.StatusUnauthorized},
		{"No header", "", http.StatusUnauthorized},
		{"No bearer prefix", validToken, http.StatusUnauthorized},
		{"Garbage token", "Bearer garbage", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotClaims = nil

			req := httptest.NewRequest(http.MethodGet, "/api/documents/", nil)
			if tt.authorization != "" {
				req.Header.Set("Authorization", tt.authorization)
			}
			rec := httptest.NewRecorder()

			middleware(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				require.NotNil(t, gotClaims)
				assert.Equal(t, "active-user", gotClaims.Subject)
			} else {
				assert.Nil(t, gotClaims)
			}
		})
	}
}
