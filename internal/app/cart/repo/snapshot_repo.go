package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/cartsync-service/internal/app/cart/contracts"
	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
	"github.com/light-bringer/cartsync-service/internal/models/m_product"
)

// SnapshotRepo serves product snapshots from the products table.
type SnapshotRepo struct {
	client *spanner.Client
	model  *m_product.Model
}

var _ contracts.ProductSnapshotProvider = (*SnapshotRepo)(nil)

// NewSnapshotRepo creates a new SnapshotRepo.
func NewSnapshotRepo(client *spanner.Client) *SnapshotRepo {
	return &SnapshotRepo{
		client: client,
		model:  m_product.NewModel(),
	}
}

// Snapshot reads one product.
func (r *SnapshotRepo) Snapshot(ctx context.Context, productID string) (*domain.ProductSnapshot, error) {
	row, err := r.client.Single().ReadRow(ctx, m_product.TableName, spanner.Key{productID}, m_product.Columns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to read product: %w", err)
	}

	var data m_product.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse product: %w", err)
	}
	return productDataToDomain(&data)
}

// UpsertMut creates a mutation that writes a snapshot into the catalog table.
func (r *SnapshotRepo) UpsertMut(snapshot *domain.ProductSnapshot) (*spanner.Mutation, error) {
	if err := snapshot.Validate(); err != nil {
		return nil, err
	}

	num, den := priceColumns(snapshot.Price)
	saleNum, saleDen := salePriceColumns(snapshot.SalePrice)
	return r.model.UpsertMut(&m_product.Data{
		ProductID:            snapshot.ID,
		Name:                 snapshot.Name,
		PriceNumerator:       num,
		PriceDenominator:     den,
		SalePriceNumerator:   saleNum,
		SalePriceDenominator: saleDen,
		Stock:                int64(snapshot.Stock),
		SizeOptions:          sizeOptionsColumn(snapshot.SizeOptions),
		Images:               snapshot.Images,
	}), nil
}

func productDataToDomain(data *m_product.Data) (*domain.ProductSnapshot, error) {
	price, err := domain.NewMoney(data.PriceNumerator, data.PriceDenominator)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", data.ProductID, err)
	}
	sale, err := salePriceFromColumns(data.SalePriceNumerator, data.SalePriceDenominator)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", data.ProductID, err)
	}
	sizes, err := sizeOptionsFromColumn(data.SizeOptions)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", data.ProductID, err)
	}

	return &domain.ProductSnapshot{
		ID:          data.ProductID,
		Name:        data.Name,
		Price:       price,
		SalePrice:   sale,
		Stock:       int(data.Stock),
		SizeOptions: sizes,
		Images:      data.Images,
	}, nil
}
