package cart

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/light-bringer/cartsync-service/internal/app/cart/contracts"
	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
)

// Handler implements the Remote Cart Service over the server-side cart repository.
type Handler struct {
	repo     contracts.CartRepository
	products contracts.ProductSnapshotProvider
	logger   *zap.Logger
}

var _ CartServiceServer = (*Handler)(nil)

// NewHandler creates a new cart gRPC handler.
func NewHandler(repo contracts.CartRepository, products contracts.ProductSnapshotProvider, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		repo:     repo,
		products: products,
		logger:   logger,
	}
}

// List returns the caller's cart. Anonymous callers get an empty cart.
func (h *Handler) List(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	reply := listReply{Items: []wireItem{}}

	userID, ok := userFromContext(ctx)
	if !ok {
		return toStruct(reply)
	}

	items, err := h.repo.List(ctx, userID)
	if err != nil {
		h.logger.Error("list cart failed", zap.String("user_id", userID), zap.Error(err))
		return nil, mapDomainErrorToGRPC(err)
	}
	for _, item := range items {
		reply.Items = append(reply.Items, itemToWire(item))
	}
	return toStruct(reply)
}

// Add merges into the caller's line. Anonymous callers get the product back
// and are expected to keep the line themselves.
func (h *Handler) Add(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	// 1. Decode and validate request
	var req addRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err := validateAddRequest(&req); err != nil {
		return nil, err
	}

	// 2. Resolve the product
	product, err := h.products.Snapshot(ctx, req.ProductID)
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}
	if !product.HasSize(req.SizeID) {
		return nil, mapDomainErrorToGRPC(domain.ErrInvalidSize)
	}

	// 3. Anonymous callers keep the line on their side
	userID, ok := userFromContext(ctx)
	if !ok {
		wp := productToWire(product)
		return toStruct(addReply{Product: &wp})
	}

	// 4. Persist
	item, err := h.repo.Add(ctx, userID, product, req.Quantity, req.SizeID)
	if err != nil {
		h.logger.Error("add to cart failed",
			zap.String("user_id", userID),
			zap.String("product_id", req.ProductID),
			zap.Error(err))
		return nil, mapDomainErrorToGRPC(err)
	}

	wi := itemToWire(item)
	return toStruct(addReply{Item: &wi})
}

// UpdateQuantity sets the quantity of one of the caller's lines.
func (h *Handler) UpdateQuantity(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	userID, ok := userFromContext(ctx)
	if !ok {
		return nil, mapDomainErrorToGRPC(domain.ErrUnauthenticated)
	}

	var req updateQuantityRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err := validateUpdateQuantityRequest(&req); err != nil {
		return nil, err
	}

	if err := h.repo.UpdateQuantity(ctx, userID, req.ItemID, req.Quantity); err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}
	return &structpb.Struct{}, nil
}

// Remove deletes one of the caller's lines.
func (h *Handler) Remove(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	userID, ok := userFromContext(ctx)
	if !ok {
		return nil, mapDomainErrorToGRPC(domain.ErrUnauthenticated)
	}

	var req removeRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err := validateRemoveRequest(&req); err != nil {
		return nil, err
	}

	if err := h.repo.Remove(ctx, userID, req.ItemID); err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}
	return &structpb.Struct{}, nil
}

// ClearAll deletes the caller's cart. It is a no-op for anonymous callers.
func (h *Handler) ClearAll(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	userID, ok := userFromContext(ctx)
	if !ok {
		return &structpb.Struct{}, nil
	}
	if err := h.repo.Clear(ctx, userID); err != nil {
		h.logger.Error("clear cart failed", zap.String("user_id", userID), zap.Error(err))
		return nil, mapDomainErrorToGRPC(err)
	}
	return &structpb.Struct{}, nil
}

func userFromContext(ctx context.Context) (string, bool) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", false
	}
	for _, v := range md.Get(UserIDHeader) {
		if v = strings.TrimSpace(v); v != "" {
			return v, true
		}
	}
	return "", false
}
