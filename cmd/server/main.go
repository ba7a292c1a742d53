package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"pdfshelf/internal/config"
	"pdfshelf/internal/handler"
	"pdfshelf/internal/middleware"
	"pdfshelf/internal/repository"
	"pdfshelf/internal/service/library"
	"pdfshelf/internal/storage"
	"pdfshelf/internal/vocabulary"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging (stdout, plus a rotating file when LOG_DIR is set)
	logWriter, logCloser, err := config.SetupLogWriter(cfg.LogDir, os.Stdout)
	if err != nil {
		log.Fatalf("Failed to setup logging: %v", err)
	}
	defer logCloser.Close()

	logger := config.NewLogger(cfg, logWriter)
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
		"upload_dir", cfg.UploadDir,
	)

	ctx := context.Background()

	// Open the metadata store (SQLite file or Postgres pool)
	store, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer store.Close()

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatalf("Failed to create upload directory: %v", err)
	}

	// Byte storage and the path conventions layered on it
	byteStore := storage.NewDiskStore(config.UploadChunkSize)
	resolver := library.NewPathResolver(cfg.UploadDir, cfg.LegacyPDFDirs, byteStore)

	// Stop words for tag extraction
	words, err := vocabulary.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load stop words: %v", err)
	}
	extractor := library.NewTagExtractor(words, cfg.DefaultMaxTags)

	// Create services
	folderService := library.NewFolderService(store.Folders, store.PDFs, store.TxManager, logger)
	pdfService := library.NewPDFService(store.PDFs, store.Folders, store.Tags, store.TxManager, byteStore, resolver, extractor, logger)
	bulkService := library.NewBulkService(store.PDFs, store.Folders, store.TxManager, byteStore, resolver, logger)
	tagService := library.NewTagService(store.Tags, extractor, logger)

	// Create handlers
	handlers := &handler.Handlers{
		Folders: handler.NewFolderHandler(folderService, logger),
		PDFs:    handler.NewPDFHandler(pdfService, cfg.MaxUploadMB<<20, logger),
		Bulk:    handler.NewBulkHandler(bulkService, logger),
		Tags:    handler.NewTagHandler(tagService, logger),
	}

	logger.Info("services initialized", "engine", store.Engine)

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()
	handlers.Register(mux)

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → RequestLog → Recovery → Routes
	h = middleware.Recovery(logger)(h)
	h = middleware.RequestLog(logger)(h)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Range", middleware.RequestIDHeader},
		ExposedHeaders:   []string{"Content-Disposition", "Content-Length", "Content-Range", middleware.RequestIDHeader},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     h,
		ReadTimeout: 5 * time.Minute, // large uploads
		IdleTimeout: 60 * time.Second,
	}

	// Shut down cleanly on SIGINT/SIGTERM
	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		<-sigCtx.Done()

		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}()

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
	<-shutdownDone
}
