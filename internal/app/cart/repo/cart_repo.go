package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/cartsync-service/internal/app/cart/contracts"
	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
	"github.com/light-bringer/cartsync-service/internal/models/m_cart_item"
	"github.com/light-bringer/cartsync-service/internal/pkg/clock"
	"github.com/light-bringer/cartsync-service/internal/pkg/committer"
	"github.com/light-bringer/cartsync-service/internal/pkg/query"
)

// CartRepo implements CartRepository for Spanner. Every persisted change writes its
// analytics outbox row in the same commit.
type CartRepo struct {
	client    *spanner.Client
	committer *committer.Committer
	model     *m_cart_item.Model
	outbox    contracts.OutboxRepository
	clock     clock.Clock
}

// NewCartRepo creates a new CartRepo.
func NewCartRepo(client *spanner.Client, outbox contracts.OutboxRepository, clk clock.Clock) contracts.CartRepository {
	return &CartRepo{
		client:    client,
		committer: committer.NewCommitter(client),
		model:     m_cart_item.NewModel(),
		outbox:    outbox,
		clock:     clk,
	}
}

// List returns the user's lines in the order they were added.
func (r *CartRepo) List(ctx context.Context, userID string) ([]*domain.CartItem, error) {
	stmt := query.From(m_cart_item.TableName).
		Select(m_cart_item.Columns...).
		Where(query.Eq(m_cart_item.UserID, userID)).
		OrderBy(m_cart_item.AddedAt, query.Asc).
		Build()

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	items := make([]*domain.CartItem, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate cart items: %w", err)
		}

		var data m_cart_item.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse cart item: %w", err)
		}
		item, err := cartItemDataToDomain(&data)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// Add merges quantity into the (product, size) line or creates it.
func (r *CartRepo) Add(ctx context.Context, userID string, product *domain.ProductSnapshot, quantity int, sizeID string) (*domain.CartItem, error) {
	if quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}

	var result *domain.CartItem
	err := r.committer.ApplyWithReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		existing, err := r.findByKey(ctx, txn, userID, product.ID, sizeID)
		if err != nil {
			return err
		}

		plan := committer.NewPlan()
		merged := existing != nil
		if merged {
			existing.Quantity += int64(quantity)
			plan.Add(r.model.UpdateQuantityMut(userID, existing.ItemID, existing.Quantity))
			result, err = cartItemDataToDomain(existing)
		} else {
			data := cartItemToData(userID, uuid.New().String(), product, quantity, sizeID, r.clock.Now())
			plan.Add(r.model.InsertMut(data))
			result, err = cartItemDataToDomain(data)
		}
		if err != nil {
			return err
		}

		event := &domain.ItemAddedEvent{
			CartID:      userID,
			ItemID:      result.ID().Value(),
			ProductID:   product.ID,
			ProductName: product.Name,
			Price:       result.UnitPrice().RatString(),
			Quantity:    quantity,
			SizeID:      sizeID,
			Merged:      merged,
			AddedAt:     r.clock.Now(),
		}
		if err := r.addOutbox(plan, event); err != nil {
			return err
		}
		return plan.Buffer(txn)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateQuantity sets a line's quantity.
func (r *CartRepo) UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) error {
	if quantity < 1 {
		return domain.ErrInvalidQuantity
	}

	return r.committer.ApplyWithReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		data, err := r.read(ctx, txn, userID, itemID)
		if err != nil {
			return err
		}

		plan := committer.NewPlan()
		plan.Add(r.model.UpdateQuantityMut(userID, itemID, int64(quantity)))
		event := &domain.QuantityUpdatedEvent{
			CartID:      userID,
			ItemID:      itemID,
			OldQuantity: int(data.Quantity),
			NewQuantity: quantity,
			UpdatedAt:   r.clock.Now(),
		}
		if err := r.addOutbox(plan, event); err != nil {
			return err
		}
		return plan.Buffer(txn)
	})
}

// Remove deletes a line.
func (r *CartRepo) Remove(ctx context.Context, userID, itemID string) error {
	return r.committer.ApplyWithReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		data, err := r.read(ctx, txn, userID, itemID)
		if err != nil {
			return err
		}

		plan := committer.NewPlan()
		plan.Add(r.model.DeleteMut(userID, itemID))
		event := &domain.ItemRemovedEvent{
			CartID:      userID,
			ItemID:      itemID,
			ProductID:   data.ProductID,
			ProductName: data.ProductName,
			Quantity:    int(data.Quantity),
			SizeID:      data.SizeID,
			RemovedAt:   r.clock.Now(),
		}
		if item, err := cartItemDataToDomain(data); err == nil {
			event.Price = item.UnitPrice().RatString()
		}
		if err := r.addOutbox(plan, event); err != nil {
			return err
		}
		return plan.Buffer(txn)
	})
}

// Clear deletes every line of the user. Clearing an empty cart succeeds.
func (r *CartRepo) Clear(ctx context.Context, userID string) error {
	plan := committer.NewPlan()
	plan.Add(r.model.DeleteAllMut(userID))
	if err := r.addOutbox(plan, &domain.CartClearedEvent{CartID: userID, ClearedAt: r.clock.Now()}); err != nil {
		return err
	}
	return r.committer.Apply(ctx, plan)
}

func (r *CartRepo) addOutbox(plan *committer.CommitPlan, event domain.DomainEvent) error {
	enriched, err := r.outbox.EnrichEvent(event)
	if err != nil {
		return err
	}
	plan.Add(r.outbox.InsertMut(enriched))
	return nil
}

func (r *CartRepo) read(ctx context.Context, txn *spanner.ReadWriteTransaction, userID, itemID string) (*m_cart_item.Data, error) {
	row, err := txn.ReadRow(ctx, m_cart_item.TableName, spanner.Key{userID, itemID}, m_cart_item.Columns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to read cart item: %w", err)
	}

	var data m_cart_item.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse cart item: %w", err)
	}
	return &data, nil
}

func (r *CartRepo) findByKey(ctx context.Context, txn *spanner.ReadWriteTransaction, userID, productID, sizeID string) (*m_cart_item.Data, error) {
	stmt := query.From(m_cart_item.TableName).
		Select(m_cart_item.Columns...).
		Where(query.Eq(m_cart_item.UserID, userID)).
		Where(query.Eq(m_cart_item.ProductID, productID)).
		Where(query.Eq(m_cart_item.SizeID, sizeID)).
		Limit(1).
		Build()

	iter := txn.Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up cart item: %w", err)
	}

	var data m_cart_item.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse cart item: %w", err)
	}
	return &data, nil
}
