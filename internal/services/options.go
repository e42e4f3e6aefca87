package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"go.uber.org/zap"

	"github.com/light-bringer/cartsync-service/internal/app/cart/repo"
	"github.com/light-bringer/cartsync-service/internal/pkg/clock"
	"github.com/light-bringer/cartsync-service/internal/transport/grpc/cart"
	httphandler "github.com/light-bringer/cartsync-service/internal/transport/http"
)

// ServiceOptions holds all dependencies of the Remote Cart Service server.
type ServiceOptions struct {
	SpannerClient *spanner.Client
	CartHandler   *cart.Handler
	HTTPHandler   *httphandler.CartHandler
}

// NewServiceOptions creates and wires up all server dependencies.
func NewServiceOptions(ctx context.Context, spannerDB string, logger *zap.Logger) (*ServiceOptions, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	// 1. Initialize Spanner client
	spannerClient, err := spanner.NewClient(ctx, spannerDB)
	if err != nil {
		return nil, fmt.Errorf("failed to create Spanner client: %w", err)
	}

	// 2. Create infrastructure components
	clk := clock.NewRealClock()

	// 3. Create repositories
	outboxRepo := repo.NewOutboxRepo()
	cartRepo := repo.NewCartRepo(spannerClient, outboxRepo, clk)
	snapshotRepo := repo.NewSnapshotRepo(spannerClient)

	// 4. Create gRPC handler
	cartHandler := cart.NewHandler(cartRepo, snapshotRepo, logger.Named("grpc"))

	// 5. Create HTTP handler
	httpHandler := httphandler.NewCartHandler(cartRepo, logger.Named("http"))

	return &ServiceOptions{
		SpannerClient: spannerClient,
		CartHandler:   cartHandler,
		HTTPHandler:   httpHandler,
	}, nil
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
}
