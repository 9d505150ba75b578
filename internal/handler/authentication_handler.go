package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/mail"
	"strings"

	"rag-platform-server/internal/model/requestresponse"
	"rag-platform-server/internal/ports"
	"rag-platform-server/internal/security"
	"rag-platform-server/internal/service"
	"rag-platform-server/internal/util"
)

type AuthenticationHandler struct {
	authService ports.AuthenticationService
	userService ports.UserService
}

func NewAuthenticationHandler(authService ports.AuthenticationService, userService ports.UserService) *AuthenticationHandler {
	return &AuthenticationHandler{
		authService: authService,
		userService: userService,
	}
}

// RegisterUser godoc
// @Summary Регистрация нового пользователя
// @Description Создаёт пользователя по email, username и паролю
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body requestresponse.RegisterRequest true "Данные нового пользователя"
// @Success 200 {object} requestresponse.UserResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Логин или email уже заняты"
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/auth/register [post]
func (h *AuthenticationHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.HandleError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Username == "" || req.Password == "" {
		util.HandleError(w, "username and password are required", http.StatusBadRequest)
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		util.HandleError(w, "invalid email address", http.StatusBadRequest)
		return
	}

	user, err := h.userService.Register(r.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		log.Println(err)
		switch {
		case errors.Is(err, service.ErrUserExists):
			util.HandleError(w, "Username or email already exists.", http.StatusBadRequest)
		default:
			util.HandleError(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.UserResponseFromModel(user))
}

// Login godoc
// @Summary Аутентификация пользователя
// @Description Принимает form-encoded username (login или email) и password, отдаёт bearer токен
// @Tags Auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Login или email"
// @Param password formData string true "Пароль"
// @Success 200 {object} requestresponse.TokenResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Учётная запись деактивирована"
// @Failure 401 {object} requestresponse.ErrorResponse "Неверный логин или пароль"
// @Router /api/auth/login [post]
func (h *AuthenticationHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		util.HandleError(w, "invalid form data", http.StatusBadRequest)
		return
	}

	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")

	token, err := h.authService.Login(r.Context(), username, password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			w.Header().Set("WWW-Authenticate", "Bearer")
			util.HandleError(w, "Incorrect username or password", http.StatusUnauthorized)
		case errors.Is(err, service.ErrInactiveUser):
			util.HandleError(w, "Inactive user", http.StatusBadRequest)
		default:
			log.Println(err)
			util.HandleError(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// GetCurrentUser godoc
// @Summary Текущий пользователь
// @Description Возвращает профиль пользователя из bearer токена
// @Tags Auth
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.UserResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/auth/me [get]
func (h *AuthenticationHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		util.HandleError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.authService.CurrentUser(r.Context(), claims.Subject)
	if err != nil {
		log.Println(err)
		util.HandleError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.UserResponseFromModel(user))
}
