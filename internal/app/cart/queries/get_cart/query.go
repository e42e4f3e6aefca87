package get_cart

import (
	"context"
	"time"

	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
	"github.com/light-bringer/cartsync-service/internal/app/cart/session"
)

// ItemDTO is a read-only view of one cart line.
type ItemDTO struct {
	ID          domain.ItemID
	ProductID   string
	ProductName string
	SizeID      string
	Quantity    int
	UnitPrice   *domain.Money
	LineTotal   *domain.Money
	State       domain.ItemState
	AddedAt     time.Time
}

// CartDTO is a read-only view of the cart.
type CartDTO struct {
	CartID    string
	Items     []*ItemDTO
	Total     *domain.Money
	ItemCount int
	IsLoading bool
}

// Query handles the get cart query use case.
type Query struct {
	session *session.Session
}

// NewQuery creates a new get cart query.
func NewQuery(sess *session.Session) *Query {
	return &Query{session: sess}
}

// Execute returns a consistent snapshot of the cart.
func (q *Query) Execute(ctx context.Context) (*CartDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var dto *CartDTO
	q.session.Read(func(cart *domain.Cart) {
		dto = toDTO(cart)
	})
	dto.IsLoading = dto.IsLoading || q.session.IsLoading()
	return dto, nil
}

func toDTO(cart *domain.Cart) *CartDTO {
	items := cart.Items()
	dto := &CartDTO{
		CartID:    cart.ID(),
		Items:     make([]*ItemDTO, 0, len(items)),
		Total:     cart.Total(),
		ItemCount: cart.ItemCount(),
		IsLoading: cart.IsLoading(),
	}
	for _, item := range items {
		dto.Items = append(dto.Items, &ItemDTO{
			ID:          item.ID(),
			ProductID:   item.ProductID(),
			ProductName: item.Product().Name,
			SizeID:      item.SizeID(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice(),
			LineTotal:   item.LineTotal(),
			State:       item.State(),
			AddedAt:     item.AddedAt(),
		})
	}
	return dto
}
