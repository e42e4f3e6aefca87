package repo

import (
	"encoding/json"
	"fmt"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
	"github.com/light-bringer/cartsync-service/internal/models/m_product"
)

// priceColumns splits a price into the numerator/denominator pair Spanner stores.
func priceColumns(m *domain.Money) (int64, int64) {
	return m.Numerator(), m.Denominator()
}

// salePriceColumns is priceColumns for the nullable sale price.
func salePriceColumns(m *domain.Money) (spanner.NullInt64, spanner.NullInt64) {
	if m == nil {
		return spanner.NullInt64{}, spanner.NullInt64{}
	}
	num, den := priceColumns(m)
	return spanner.NullInt64{Int64: num, Valid: true}, spanner.NullInt64{Int64: den, Valid: true}
}

func salePriceFromColumns(num, den spanner.NullInt64) (*domain.Money, error) {
	if !num.Valid || !den.Valid {
		return nil, nil
	}
	return domain.NewMoney(num.Int64, den.Int64)
}

func sizeOptionsColumn(opts []domain.SizeOption) spanner.NullJSON {
	if len(opts) == 0 {
		return spanner.NullJSON{}
	}
	rows := make([]m_product.SizeOption, 0, len(opts))
	for _, opt := range opts {
		rows = append(rows, m_product.SizeOption{ID: opt.ID, Name: opt.Name})
	}
	return spanner.NullJSON{Value: rows, Valid: true}
}

// sizeOptionsFromColumn decodes size_options. Spanner hands JSON back as generic values,
// so they are re-marshalled into the typed form.
func sizeOptionsFromColumn(col spanner.NullJSON) ([]domain.SizeOption, error) {
	if !col.Valid || col.Value == nil {
		return nil, nil
	}
	raw, err := json.Marshal(col.Value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode size options: %w", err)
	}
	var rows []m_product.SizeOption
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode size options: %w", err)
	}
	opts := make([]domain.SizeOption, 0, len(rows))
	for _, row := range rows {
		opts = append(opts, domain.SizeOption{ID: row.ID, Name: row.Name})
	}
	return opts, nil
}
