package cart

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/light-bringer/cartsync-service/internal/app/cart/contracts"
	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
)

// Client is a RemoteCartService backed by a CartService connection.
// An empty user id makes every call anonymous.
type Client struct {
	conn grpc.ClientConnInterface

	mu     sync.RWMutex
	userID string
}

var _ contracts.RemoteCartService = (*Client)(nil)

// NewClient creates a client acting for userID.
func NewClient(conn grpc.ClientConnInterface, userID string) *Client {
	return &Client{conn: conn, userID: userID}
}

// SetUserID switches the identity used by later calls. An empty id signs out.
func (c *Client) SetUserID(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.userID = userID
}

func (c *Client) user() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userID
}

// List returns the user's cart lines.
func (c *Client) List(ctx context.Context) ([]*domain.CartItem, error) {
	out, err := c.invoke(ctx, MethodList, struct{}{})
	if err != nil {
		return nil, err
	}

	var reply listReply
	if err := fromStruct(out, &reply); err != nil {
		return nil, err
	}
	items := make([]*domain.CartItem, 0, len(reply.Items))
	for _, w := range reply.Items {
		item, err := itemFromWire(w)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// Add merges quantity into the (productID, sizeID) line.
func (c *Client) Add(ctx context.Context, productID string, quantity int, sizeID string) (*contracts.AddResult, error) {
	out, err := c.invoke(ctx, MethodAdd, addRequest{ProductID: productID, Quantity: quantity, SizeID: sizeID})
	if err != nil {
		return nil, err
	}

	var reply addReply
	if err := fromStruct(out, &reply); err != nil {
		return nil, err
	}

	switch {
	case reply.Item != nil:
		item, err := itemFromWire(*reply.Item)
		if err != nil {
			return nil, err
		}
		return &contracts.AddResult{Item: item}, nil
	case reply.Product != nil:
		product, err := productFromWire(*reply.Product)
		if err != nil {
			return nil, err
		}
		return &contracts.AddResult{Product: product}, nil
	default:
		return nil, fmt.Errorf("add reply carries neither item nor product")
	}
}

// UpdateQuantity sets the quantity of a persisted line.
func (c *Client) UpdateQuantity(ctx context.Context, itemID string, quantity int) error {
	_, err := c.invoke(ctx, MethodUpdateQuantity, updateQuantityRequest{ItemID: itemID, Quantity: quantity})
	return err
}

// Remove deletes a persisted line.
func (c *Client) Remove(ctx context.Context, itemID string) error {
	_, err := c.invoke(ctx, MethodRemove, removeRequest{ItemID: itemID})
	return err
}

// ClearAll deletes every persisted line of the user.
func (c *Client) ClearAll(ctx context.Context) error {
	_, err := c.invoke(ctx, MethodClearAll, struct{}{})
	return err
}

func (c *Client) invoke(ctx context.Context, method string, req any) (*structpb.Struct, error) {
	in, err := toStruct(req)
	if err != nil {
		return nil, err
	}
	if userID := c.user(); userID != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, UserIDHeader, userID)
	}

	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, fullMethod(method), in, out); err != nil {
		return nil, mapGRPCErrorToDomain(err)
	}
	return out, nil
}
