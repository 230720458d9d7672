package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eduportal/resources-service/internal/config"
	"github.com/eduportal/resources-service/internal/services/media"
	"github.com/eduportal/resources-service/internal/storage/postgres"
)

// orphanGracePeriod keeps the janitor from deleting blobs whose resource row
// is still being inserted by an in-flight upload.
const orphanGracePeriod = time.Hour

// purgeAfter is how long a soft-deleted resource row lingers before purge.
const purgeAfter = 30 * 24 * time.Hour

type JanitorWorker struct {
	storage  *postgres.Postgres
	blobs    *media.Service
	interval time.Duration
	logger   *slog.Logger
}

func NewJanitorWorker(storage *postgres.Postgres, blobs *media.Service, interval time.Duration) *JanitorWorker {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	return &JanitorWorker{
		storage:  storage,
		blobs:    blobs,
		interval: interval,
		logger:   logger,
	}
}

func (jw *JanitorWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(jw.interval)
	defer ticker.Stop()

	jw.logger.Info("Janitor worker started",
		"interval", jw.interval.String())

	// Run once immediately on startup
	jw.runSweep(ctx)

	for {
		select {
		case <-ctx.Done():
			jw.logger.Info("Janitor worker shutting down")
			return
		case <-ticker.C:
			jw.runSweep(ctx)
		}
	}
}

func (jw *JanitorWorker) runSweep(ctx context.Context) {
	jw.purgeInactiveRows()
	jw.sweepOrphanedBlobs(ctx)
}

func (jw *JanitorWorker) purgeInactiveRows() {
	startTime := time.Now()

	jw.logger.Info("Starting inactive resource purge")

	count, err := jw.storage.PurgeInactiveResources(purgeAfter)
	if err != nil {
		jw.logger.Error("Failed to purge inactive resources",
			"error", err.Error(),
			"duration_ms", time.Since(startTime).Milliseconds())
		return
	}

	jw.logger.Info("Completed inactive resource purge",
		"rows_purged", count,
		"duration_ms", time.Since(startTime).Milliseconds())
}

// sweepOrphanedBlobs removes stored objects that no resource row points at.
// Orphans appear when a row insert fails after the bytes landed and the
// compensating delete also failed.
func (jw *JanitorWorker) sweepOrphanedBlobs(ctx context.Context) {
	startTime := time.Now()

	jw.logger.Info("Starting orphaned blob sweep")

	paths, err := jw.storage.AllResourcePaths()
	if err != nil {
		jw.logger.Error("Failed to list resource paths", "error", err.Error())
		return
	}

	known := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		known[p] = struct{}{}
	}

	objects, err := jw.blobs.ListObjects(ctx)
	if err != nil {
		jw.logger.Error("Failed to list stored objects", "error", err.Error())
		return
	}

	var removed int
	for _, obj := range objects {
		if _, ok := known[obj.Key]; ok {
			continue
		}
		if time.Since(obj.LastModified) < orphanGracePeriod {
			continue
		}

		if err := jw.blobs.Remove(ctx, obj.Key); err != nil {
			jw.logger.Error("Failed to remove orphaned blob",
				"path", obj.Key,
				"error", err.Error())
			continue
		}
		removed++
	}

	jw.logger.Info("Completed orphaned blob sweep",
		"objects_scanned", len(objects),
		"orphans_removed", removed,
		"duration_ms", time.Since(startTime).Milliseconds())
}

func main() {
	// Load config
	cfg := config.MustLoad()

	// Initialize database connection
	storage, err := postgres.NewPostgres(cfg)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	slog.Info("Connected to Postgres database")

	// Initialize object storage
	blobs, err := media.NewService(cfg)
	if err != nil {
		log.Fatal("Failed to initialize object storage:", err)
	}
	slog.Info("Connected to MinIO", slog.String("bucket", cfg.MinIO.BucketName))

	// Create worker with 10-minute interval
	worker := NewJanitorWorker(storage, blobs, 10*time.Minute)

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		slog.Info("Received shutdown signal")
		cancel()
	}()

	// Start the worker
	worker.Start(ctx)

	slog.Info("Janitor worker stopped")
}
