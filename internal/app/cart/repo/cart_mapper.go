package repo

import (
	"fmt"
	"time"

	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
	"github.com/light-bringer/cartsync-service/internal/models/m_cart_item"
)

// cartItemToData flattens a new line and its snapshot into a cart_items row.
func cartItemToData(userID, itemID string, product *domain.ProductSnapshot, quantity int, sizeID string, addedAt time.Time) *m_cart_item.Data {
	num, den := priceColumns(product.Price)
	saleNum, saleDen := salePriceColumns(product.SalePrice)
	return &m_cart_item.Data{
		UserID:               userID,
		ItemID:               itemID,
		ProductID:            product.ID,
		SizeID:               sizeID,
		Quantity:             int64(quantity),
		ProductName:          product.Name,
		PriceNumerator:       num,
		PriceDenominator:     den,
		SalePriceNumerator:   saleNum,
		SalePriceDenominator: saleDen,
		Stock:                int64(product.Stock),
		SizeOptions:          sizeOptionsColumn(product.SizeOptions),
		Images:               product.Images,
		AddedAt:              addedAt,
	}
}

// cartItemDataToDomain rebuilds a remote-classified line from its row.
func cartItemDataToDomain(data *m_cart_item.Data) (*domain.CartItem, error) {
	price, err := domain.NewMoney(data.PriceNumerator, data.PriceDenominator)
	if err != nil {
		return nil, fmt.Errorf("cart item %s: %w", data.ItemID, err)
	}
	sale, err := salePriceFromColumns(data.SalePriceNumerator, data.SalePriceDenominator)
	if err != nil {
		return nil, fmt.Errorf("cart item %s: %w", data.ItemID, err)
	}
	sizes, err := sizeOptionsFromColumn(data.SizeOptions)
	if err != nil {
		return nil, fmt.Errorf("cart item %s: %w", data.ItemID, err)
	}

	snapshot := &domain.ProductSnapshot{
		ID:          data.ProductID,
		Name:        data.ProductName,
		Price:       price,
		SalePrice:   sale,
		Stock:       int(data.Stock),
		SizeOptions: sizes,
		Images:      data.Images,
	}
	return domain.NewCartItem(domain.NewRemoteID(data.ItemID), data.SizeID, int(data.Quantity), snapshot, data.AddedAt)
}
