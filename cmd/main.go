package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	_ "github.com/lib/pq"
	httpSwagger "github.com/swaggo/http-swagger"

	"rag-platform-server/config"
	_ "rag-platform-server/docs"
	"rag-platform-server/internal/handler"
	"rag-platform-server/internal/repository"
	"rag-platform-server/internal/security"
	"rag-platform-server/internal/service"
	"rag-platform-server/internal/util"
)

// @title RAG Platform API
// @version 0.1.0
// @description REST API для регистрации пользователей и загрузки документов

// @host localhost:8080

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	db, err := config.SetupDatabase(cfg.DatabaseConfig.DSN)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка при закрытии БД: %v", err)
		}
	}()

	redisClient, err := config.SetupRedis(&cfg.RedisConfig)
	if err != nil {
		log.Fatalf("Ошибка подключения к Redis: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("Ошибка при закрытии Redis: %v", err)
		}
	}()

	srv, router := config.SetupServer(cfg.ServerAddr)

	userRepo := repository.NewUserRepository(db)
	docRepo := repository.NewDocumentRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, time.Duration(cfg.TTL.CacheSeconds)*time.Second)

	fileService, err := service.NewFileService(&cfg.Storage)
	if err != nil {
		log.Fatalf("Ошибка создания файлового хранилища: %v", err)
	}

	jwtService := security.NewJWTService(&cfg.JWT)
	docService := service.NewDocumentService(docRepo, cacheRepo, fileService)
	userService := service.NewUserService(userRepo, db)
	authService := service.NewAuthenticationService(userRepo, jwtService, db)

	authHandler := handler.NewAuthenticationHandler(authService, userService)
	docHandler := handler.NewDocumentHandler(docService)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/", rootHandler)
	router.Get("/health", healthHandler)

	setupAuthRoutes(router, authHandler, jwtService, userRepo, db)
	setupDocumentRoutes(router, docHandler, jwtService, userRepo, db)

	runServer(ctx, srv)
}

func setupAuthRoutes(r chi.Router, h *handler.AuthenticationHandler, jwtService *security.JWTService, userRepo *repository.UserRepository, db *config.Database) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", h.RegisterUser)
		r.Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(security.JWTMiddleware(jwtService, userRepo, db))
			r.Get("/me", h.GetCurrentUser)
		})
	})
}

func setupDocumentRoutes(r chi.Router, h *handler.DocumentHandler, jwtService *security.JWTService, userRepo *repository.UserRepository, db *config.Database) {
	r.Route("/api/documents", func(r chi.Router) {
		r.Use(security.JWTMiddleware(jwtService, userRepo, db))
		r.Post("/upload", h.UploadDocument)
		r.Get("/", h.ListDocuments)

		r.Route("/{document_id}", func(r chi.Router) {
			r.Get("/", h.GetDocument)
			r.Delete("/", h.DeleteDocument)
		})
	})
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	util.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "RAG Platform API",
		"version": "0.1.0",
	})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	util.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func runServer(ctx context.Context, server *http.Server) {
	serverErrors := make(chan error, 1)
	go func() {
		log.Println("сервер запущен на " + server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil {
			log.Fatalf("ошибка работы сервера: %v", err)
		}
	case sig := <-signalChannel:
		log.Printf("получен сигнал %v остановки работы сервера ", sig)
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		log.Printf("ошибка при остановке сервера: %v", err)
	} else {
		log.Println("Сервер успешно остановлен")
	}
}
