package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/booking-assistant/internal/audit"
	"github.com/BruksfildServices01/booking-assistant/internal/config"
	dbpkg "github.com/BruksfildServices01/booking-assistant/internal/db"
	"github.com/BruksfildServices01/booking-assistant/internal/infra/llm"
	"github.com/BruksfildServices01/booking-assistant/internal/infra/mailer"
	"github.com/BruksfildServices01/booking-assistant/internal/infra/memory"
	"github.com/BruksfildServices01/booking-assistant/internal/infra/queue"
	"github.com/BruksfildServices01/booking-assistant/internal/infra/storage"
	"github.com/BruksfildServices01/booking-assistant/internal/infra/websearch"
	"github.com/BruksfildServices01/booking-assistant/internal/logger"
	"github.com/BruksfildServices01/booking-assistant/internal/metrics"
	"github.com/BruksfildServices01/booking-assistant/internal/rag"
	"github.com/BruksfildServices01/booking-assistant/internal/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if err := run(cfg, zlog); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zlog *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := dbpkg.NewDB(cfg, zlog)
	if err != nil {
		return err
	}

	metrics.Register()

	// ======================================================
	// LLM + RAG
	// ======================================================
	gemini, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.LLMModel, cfg.EmbeddingModel)
	if err != nil {
		return err
	}
	defer gemini.Close()

	vectors := rag.NewVectorStore(db)
	if err := vectors.Load(ctx); err != nil {
		return err
	}
	zlog.Info("vector store loaded", zap.Int("chunks", vectors.Len()))

	pipeline := rag.NewPipeline(vectors, rag.NewSplitter(cfg.ChunkSize, cfg.ChunkOverlap), gemini, zlog)

	// ======================================================
	// MAIL
	// ======================================================
	smtp := mailer.NewSMTPMailer(mailer.Config{
		Host:     cfg.SMTPServer,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.EmailFrom,
	}, zlog)
	if !cfg.EmailConfigured() {
		zlog.Warn("SMTP credentials not set, confirmation emails are disabled")
	}

	// ======================================================
	// MEMORY + QUEUE
	// ======================================================
	var (
		store      memory.Store
		emailQueue *queue.EmailQueue
		worker     *queue.Worker
	)

	if cfg.RedisEnabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			return err
		}
		store = memory.NewRedisStore(rdb, time.Duration(cfg.MemoryTTLMinutes)*time.Minute)

		redisOpt := asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}

		asynqClient := asynq.NewClient(redisOpt)
		defer asynqClient.Close()
		emailQueue = queue.NewEmailQueue(asynqClient, zlog)

		worker = queue.NewWorker(redisOpt, smtp, zlog)
		if err := worker.Start(); err != nil {
			return err
		}
		defer worker.Shutdown()

		zlog.Info("redis enabled", zap.String("addr", cfg.RedisAddr))
	} else {
		store = memory.NewInProcessStore()
		zlog.Warn("REDIS_ADDR not set, using in-process memory and no email retries")
	}

	// ======================================================
	// STORAGE
	// ======================================================
	var files storage.Store
	switch cfg.StorageDriver {
	case "s3":
		files, err = storage.NewS3Store(storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		})
	default:
		files, err = storage.NewLocalStore(cfg.StorageDir)
	}
	if err != nil {
		return err
	}

	// ======================================================
	// AUDIT
	// ======================================================
	dispatcher := audit.NewDispatcher(audit.New(db), zlog)
	defer dispatcher.Close()

	// ======================================================
	// HTTP
	// ======================================================
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	routes.RegisterRoutes(r, routes.Deps{
		DB:         db,
		Config:     cfg,
		Log:        zlog,
		Audit:      dispatcher,
		Memory:     store,
		LLM:        gemini,
		RAG:        pipeline,
		Storage:    files,
		Mailer:     smtp,
		Search:     websearch.NewDuckDuckGo(cfg.WebSearchEnabled, cfg.WebSearchURL),
		EmailQueue: emailQueue,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zlog.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zlog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
