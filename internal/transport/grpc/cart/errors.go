package cart

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
)

const (
	msgProductNotFound = "product not found"
	msgItemNotFound    = "cart item not found"
)

// mapDomainErrorToGRPC converts domain errors to gRPC status codes.
func mapDomainErrorToGRPC(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return status.Error(codes.NotFound, msgProductNotFound)

	case errors.Is(err, domain.ErrItemNotFound):
		return status.Error(codes.NotFound, msgItemNotFound)

	case errors.Is(err, domain.ErrInvalidQuantity):
		return status.Error(codes.InvalidArgument, "quantity must be at least 1")

	case errors.Is(err, domain.ErrInvalidSize):
		return status.Error(codes.InvalidArgument, "size is not offered for this product")

	case errors.Is(err, domain.ErrInvalidProductID),
		errors.Is(err, domain.ErrInvalidItemID),
		errors.Is(err, domain.ErrInvalidPrice):
		return status.Error(codes.InvalidArgument, err.Error())

	case errors.Is(err, domain.ErrUnauthenticated):
		return status.Error(codes.Unauthenticated, "sign in to modify the saved cart")

	default:
		return status.Error(codes.Internal, "internal server error")
	}
}

// mapGRPCErrorToDomain restores the domain sentinel a status stands for, when there is one.
func mapGRPCErrorToDomain(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch {
	case st.Code() == codes.NotFound && st.Message() == msgItemNotFound:
		return domain.ErrItemNotFound
	case st.Code() == codes.NotFound && st.Message() == msgProductNotFound:
		return domain.ErrProductNotFound
	case st.Code() == codes.Unauthenticated:
		return domain.ErrUnauthenticated
	default:
		return err
	}
}
