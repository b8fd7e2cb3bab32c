package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yogapw/asclepius/internal/application"
	apppred "github.com/yogapw/asclepius/internal/application/predictions"
	"github.com/yogapw/asclepius/internal/config"
	domain "github.com/yogapw/asclepius/internal/domain/predictions"
	memstore "github.com/yogapw/asclepius/internal/infra/db/memory"
	mysqlp "github.com/yogapw/asclepius/internal/infra/db/mysql"
	postgresp "github.com/yogapw/asclepius/internal/infra/db/postgres"
	redisp "github.com/yogapw/asclepius/internal/infra/db/redis"
	"github.com/yogapw/asclepius/internal/infra/httpserver"
	"github.com/yogapw/asclepius/internal/infra/model/onnx"
	minioStore "github.com/yogapw/asclepius/internal/infra/storage"
	"github.com/yogapw/asclepius/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	// load model duluan: tanpa model proses tidak boleh terima traffic
	classifier, err := onnx.NewClassifier(cfg.Model.Path, cfg.Model.MetadataPath, cfg.Model.MaxInflight)
	if err != nil {
		log.Fatalf("model load error: %v", err)
	}
	defer classifier.Close()

	checkers := map[string]middleware.HealthChecker{
		"model": middleware.CheckerFunc(classifier.Ready),
	}

	// init repo sesuai driver
	var repo domain.Repository
	switch cfg.Database.Driver {
	case "mysql":
		db, err := mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			log.Fatalf("mysql connect error: %v", err)
		}
		defer db.Close()
		repo = mysqlp.NewPredictionRepository(db)
		checkers["database"] = &middleware.DatabaseHealthChecker{DB: db}
	case "postgres":
		db, err := postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			log.Fatalf("postgres connect error: %v", err)
		}
		defer db.Close()
		repo = postgresp.NewPredictionRepository(db)
		checkers["database"] = &middleware.DatabaseHealthChecker{DB: db}
	case "redis":
		r, err := redisp.NewPredictionRepository(cfg.Database.Addr, cfg.Database.Password, cfg.Database.DB)
		if err != nil {
			log.Fatalf("redis connect error: %v", err)
		}
		defer r.Close()
		repo = r
		checkers["database"] = middleware.CheckerFunc(r.Ping)
	case "memory":
		repo = memstore.NewPredictionRepository()
	default:
		log.Fatalf("unknown database driver: %q", cfg.Database.Driver)
	}

	// init minio (opsional, arsip gambar upload)
	var archive domain.ImageArchive
	if cfg.Minio.Enabled {
		store, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			log.Fatalf("minio init error: %v", err)
		}
		archive = store
	}

	// init service
	svc := &apppred.Service{
		Repo:       repo,
		Classifier: classifier,
		Archive:    archive,
		Clock:      application.SystemClock{},
	}

	// init router
	handler := httpserver.NewRouter(svc, httpserver.Options{
		MaxUploadBytes:   cfg.Limits.MaxUploadBytes,
		RateCapacity:     cfg.Limits.RateCapacity,
		RateRefillPerSec: cfg.Limits.RateRefillPerSec,
		Checkers:         checkers,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
