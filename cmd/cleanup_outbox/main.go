// Command cleanup_outbox deletes processed cart events past their retention window.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/spanner"
	"go.uber.org/zap"

	"github.com/light-bringer/cartsync-service/internal/config"
	"github.com/light-bringer/cartsync-service/internal/models/m_outbox"
	"github.com/light-bringer/cartsync-service/internal/pkg/logging"
	"github.com/light-bringer/cartsync-service/internal/pkg/query"
)

// Options for one cleanup run.
type Options struct {
	SpannerDB     string
	RetentionDays int
	DryRun        bool
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	opts := Options{}
	flag.StringVar(&opts.SpannerDB, "database", cfg.SpannerDB, "Spanner database (format: projects/PROJECT/instances/INSTANCE/databases/DATABASE)")
	flag.IntVar(&opts.RetentionDays, "retention", 30, "Retention days for processed events")
	flag.BoolVar(&opts.DryRun, "dry-run", false, "Show what would be deleted without actually deleting")
	flag.Parse()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Invalid log level: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if opts.RetentionDays < 1 {
		logger.Fatal("retention must be at least one day", zap.Int("retention", opts.RetentionDays))
	}

	ctx := context.Background()
	client, err := spanner.NewClient(ctx, opts.SpannerDB)
	if err != nil {
		logger.Fatal("failed to create Spanner client", zap.Error(err))
	}
	defer client.Close()

	cutoff := time.Now().UTC().AddDate(0, 0, -opts.RetentionDays)
	logger.Info("starting outbox cleanup",
		zap.Time("cutoff", cutoff),
		zap.Int("retention_days", opts.RetentionDays),
		zap.Bool("dry_run", opts.DryRun))

	if opts.DryRun {
		count, err := countExpired(ctx, client.Single(), cutoff)
		if err != nil {
			logger.Fatal("cleanup failed", zap.Error(err))
		}
		logger.Info("dry run: would delete processed events", zap.Int64("count", count))
		return
	}

	deleted, err := deleteExpired(ctx, client, cutoff)
	if err != nil {
		logger.Fatal("cleanup failed", zap.Error(err))
	}
	logger.Info("cleanup completed", zap.Int64("deleted", deleted))
}

func expired(cutoff time.Time) *query.Builder {
	return query.From(m_outbox.TableName).
		Where(query.Eq(m_outbox.Status, m_outbox.StatusProcessed)).
		Where(query.Lt(m_outbox.ProcessedAt, cutoff))
}

type querier interface {
	Query(ctx context.Context, statement spanner.Statement) *spanner.RowIterator
}

func countExpired(ctx context.Context, q querier, cutoff time.Time) (int64, error) {
	iter := q.Query(ctx, expired(cutoff).Count().Build())
	defer iter.Stop()

	row, err := iter.Next()
	if err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	var count int64
	if err := row.Columns(&count); err != nil {
		return 0, fmt.Errorf("failed to parse count: %w", err)
	}
	return count, nil
}

func deleteExpired(ctx context.Context, client *spanner.Client, cutoff time.Time) (int64, error) {
	stmt := expired(cutoff).Delete()

	var deleted int64
	_, err := client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		n, err := txn.Update(ctx, stmt)
		if err != nil {
			return fmt.Errorf("failed to delete events: %w", err)
		}
		deleted = n
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("cleanup transaction failed: %w", err)
	}
	return deleted, nil
}
