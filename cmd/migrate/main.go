package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cloud.google.com/go/spanner"
	database "cloud.google.com/go/spanner/admin/database/apiv1"
	"cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	instance "cloud.google.com/go/spanner/admin/instance/apiv1"
	"cloud.google.com/go/spanner/admin/instance/apiv1/instancepb"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/cartsync-service/internal/app/cart/catalog"
	"github.com/light-bringer/cartsync-service/internal/app/cart/repo"
	"github.com/light-bringer/cartsync-service/internal/pkg/logging"
)

var (
	projectID  = flag.String("project", getEnvOrDefault("SPANNER_PROJECT_ID", "test-project"), "GCP project ID")
	instanceID = flag.String("instance", getEnvOrDefault("SPANNER_INSTANCE_ID", "dev-instance"), "Spanner instance ID")
	databaseID = flag.String("database", getEnvOrDefault("SPANNER_DATABASE_ID", "cart-db"), "Spanner database ID")
	migrateDir = flag.String("migrations", "migrations", "Directory containing migration SQL files")
	seedFile   = flag.String("seed", "", "Optional catalog YAML whose products are upserted after migrating")
	logLevel   = flag.String("log-level", getEnvOrDefault("LOG_LEVEL", "info"), "Log level")
)

// migrator owns the Spanner paths of one database.
type migrator struct {
	logger       *zap.Logger
	projectPath  string
	instancePath string
	databasePath string
}

func main() {
	flag.Parse()

	logger, err := logging.New(*logLevel)
	if err != nil {
		log.Fatalf("Invalid log level: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if emulatorHost := os.Getenv("SPANNER_EMULATOR_HOST"); emulatorHost != "" {
		logger.Info("using Spanner emulator", zap.String("host", emulatorHost))
	}

	m := &migrator{
		logger:       logger,
		projectPath:  fmt.Sprintf("projects/%s", *projectID),
		instancePath: fmt.Sprintf("projects/%s/instances/%s", *projectID, *instanceID),
		databasePath: fmt.Sprintf("projects/%s/instances/%s/databases/%s", *projectID, *instanceID, *databaseID),
	}
	if err := m.run(context.Background()); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}
	logger.Info("migrations completed successfully")
}

func (m *migrator) run(ctx context.Context) error {
	if err := m.ensureInstance(ctx); err != nil {
		return fmt.Errorf("failed to ensure instance: %w", err)
	}
	if err := m.ensureDatabase(ctx); err != nil {
		return fmt.Errorf("failed to ensure database: %w", err)
	}
	if err := m.applyMigrations(ctx, *migrateDir); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	if *seedFile != "" {
		if err := m.seed(ctx, *seedFile); err != nil {
			return fmt.Errorf("failed to seed catalog: %w", err)
		}
	}
	return nil
}

func (m *migrator) ensureInstance(ctx context.Context) error {
	instanceAdmin, err := instance.NewInstanceAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create instance admin client: %w", err)
	}
	defer instanceAdmin.Close()

	_, err = instanceAdmin.GetInstance(ctx, &instancepb.GetInstanceRequest{Name: m.instancePath})
	if err == nil {
		m.logger.Debug("instance exists", zap.String("instance", m.instancePath))
		return nil
	}
	if status.Code(err) != codes.NotFound {
		m.logger.Warn("unexpected error checking instance", zap.Error(err))
		return nil
	}

	m.logger.Info("creating instance", zap.String("instance", m.instancePath))
	op, err := instanceAdmin.CreateInstance(ctx, &instancepb.CreateInstanceRequest{
		Parent:     m.projectPath,
		InstanceId: *instanceID,
		Instance: &instancepb.Instance{
			Config:      m.projectPath + "/instanceConfigs/emulator-config",
			DisplayName: "Cart Development Instance",
			NodeCount:   1,
		},
	})
	if status.Code(err) == codes.AlreadyExists {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create instance: %w", err)
	}

	// The emulator may finish before Wait is called
	if _, err := op.Wait(ctx); err != nil && status.Code(err) != codes.AlreadyExists {
		m.logger.Warn("instance creation did not report completion", zap.Error(err))
	}
	return nil
}

func (m *migrator) ensureDatabase(ctx context.Context) error {
	adminClient, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer adminClient.Close()

	_, err = adminClient.GetDatabase(ctx, &databasepb.GetDatabaseRequest{Name: m.databasePath})
	if err == nil {
		m.logger.Debug("database exists", zap.String("database", m.databasePath))
		return nil
	}
	if status.Code(err) != codes.NotFound {
		// The emulator reports odd codes for databases it already has
		if os.Getenv("SPANNER_EMULATOR_HOST") != "" {
			m.logger.Warn("proceeding with database in emulator mode", zap.Error(err))
			return nil
		}
		return fmt.Errorf("failed to check database: %w", err)
	}

	m.logger.Info("creating database", zap.String("database", m.databasePath))
	op, err := adminClient.CreateDatabase(ctx, &databasepb.CreateDatabaseRequest{
		Parent:          m.instancePath,
		CreateStatement: fmt.Sprintf("CREATE DATABASE `%s`", *databaseID),
	})
	if status.Code(err) == codes.AlreadyExists {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	if _, err := op.Wait(ctx); err != nil {
		return fmt.Errorf("failed to wait for database creation: %w", err)
	}
	return nil
}

func (m *migrator) applyMigrations(ctx context.Context, dir string) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to list migration files: %w", err)
	}
	if len(files) == 0 {
		m.logger.Warn("no migration files found", zap.String("dir", dir))
		return nil
	}
	sort.Strings(files)

	adminClient, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer adminClient.Close()

	for _, file := range files {
		name := filepath.Base(file)

		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		statements := splitDDLStatements(string(content))
		if len(statements) == 0 {
			continue
		}

		op, err := adminClient.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
			Database:   m.databasePath,
			Statements: statements,
		})
		if err != nil {
			return fmt.Errorf("failed to start DDL update for %s: %w", name, err)
		}
		if err := op.Wait(ctx); err != nil {
			return fmt.Errorf("failed to apply DDL for %s: %w", name, err)
		}

		m.logger.Info("applied migration", zap.String("file", name), zap.Int("statements", len(statements)))
	}
	return nil
}

// seed upserts every product of a catalog file into the products table in one commit.
func (m *migrator) seed(ctx context.Context, path string) error {
	products, err := catalog.Load(path)
	if err != nil {
		return err
	}

	client, err := spanner.NewClient(ctx, m.databasePath)
	if err != nil {
		return fmt.Errorf("failed to create Spanner client: %w", err)
	}
	defer client.Close()

	snapshots := repo.NewSnapshotRepo(client)
	var mutations []*spanner.Mutation
	for _, p := range products.Products() {
		mut, err := snapshots.UpsertMut(p)
		if err != nil {
			return fmt.Errorf("product %s: %w", p.ID, err)
		}
		mutations = append(mutations, mut)
	}

	if _, err := client.Apply(ctx, mutations); err != nil {
		return fmt.Errorf("failed to upsert products: %w", err)
	}
	m.logger.Info("seeded catalog", zap.String("file", path), zap.Int("products", len(mutations)))
	return nil
}

// splitDDLStatements drops comment lines and splits on semicolons.
func splitDDLStatements(content string) []string {
	var cleaned []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		cleaned = append(cleaned, line)
	}

	var result []string
	for _, stmt := range strings.Split(strings.Join(cleaned, "\n"), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			result = append(result, stmt)
		}
	}
	return result
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
