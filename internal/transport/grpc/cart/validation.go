package cart

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// validateAddRequest validates the Add request.
func validateAddRequest(req *addRequest) error {
	if req.ProductID == "" {
		return status.Error(codes.InvalidArgument, "productId is required")
	}
	if req.Quantity < 1 {
		return status.Error(codes.InvalidArgument, "quantity must be at least 1")
	}
	return nil
}

// validateUpdateQuantityRequest validates the UpdateQuantity request.
func validateUpdateQuantityRequest(req *updateQuantityRequest) error {
	if req.ItemID == "" {
		return status.Error(codes.InvalidArgument, "itemId is required")
	}
	if req.Quantity < 1 {
		return status.Error(codes.InvalidArgument, "quantity must be at least 1")
	}
	return nil
}

// validateRemoveRequest validates the Remove request.
func validateRemoveRequest(req *removeRequest) error {
	if req.ItemID == "" {
		return status.Error(codes.InvalidArgument, "itemId is required")
	}
	return nil
}
