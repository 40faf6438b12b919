package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	dbadapter "todohub/internal/adapter/db"
	httpadapter "todohub/internal/adapter/http"
	"todohub/internal/adapter/http/handlers"
	httpmiddleware "todohub/internal/adapter/http/middleware"
	"todohub/internal/app/service"
	"todohub/internal/app/store"
	"todohub/internal/config"
	"todohub/pkg/translator"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)
	defer func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	translator.InitTranslator(translator.Config{
		TranslationFolder:  "pkg/translator/translation",
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})

	cfg := config.LoadConfig()
	todoStore := store.NewStore()

	var db *sqlx.DB
	var todoRepository *dbadapter.TodoRepository
	if cfg.SnapshotEnabled {
		db, err = dbadapter.ConnectDB(cfg)
		if err != nil {
			logger.Fatal("failed to connect to mysql", zap.Error(err))
		}
		defer func() {
			if err := db.Close(); err != nil {
				logger.Warn("failed to close mysql connection", zap.Error(err))
			}
		}()

		todoRepository = dbadapter.NewTodoRepository(db)
		if err := todoRepository.Migrate(context.Background()); err != nil {
			logger.Fatal("failed to migrate snapshot schema", zap.Error(err))
		}

		todos, err := todoRepository.LoadAll(context.Background())
		if err != nil {
			logger.Fatal("failed to load snapshot", zap.Error(err))
		}
		todoStore.ReplaceAll(todos)
		logger.Info("snapshot loaded", zap.Int("todos", len(todos)))
	}

	todoService := service.NewTodoService(todoStore)
	healthHandler := handlers.NewHealthHandler(db)
	todoHandler := handlers.NewTodoHandler(todoService)

	r := gin.New()
	r.Use(gin.Recovery(), httpmiddleware.GinZapMiddleware(logger))
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Fatal("failed to set trusted proxies", zap.Error(err))
	}
	httpadapter.RegisterRoutes(r, healthHandler, todoHandler)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	server := &http.Server{Addr: addr, Handler: r}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting server", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("could not start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("server shutdown", zap.Error(err))
	}

	// Persist the final state once all in-flight mutations have drained.
	if todoRepository != nil {
		if err := todoRepository.SaveAll(shutdownCtx, todoStore.Snapshot()); err != nil {
			logger.Error("failed to save snapshot", zap.Error(err))
			return
		}
		logger.Info("snapshot saved")
	}
}
