package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/light-bringer/cartsync-service/internal/app/cart/queries/get_cart"
)

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

type jsonItem struct {
	ID          string `json:"id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	SizeID      string `json:"size_id,omitempty"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	LineTotal   string `json:"line_total"`
	State       string `json:"state"`
}

type jsonCart struct {
	CartID    string     `json:"cart_id"`
	Items     []jsonItem `json:"items"`
	Total     string     `json:"total"`
	ItemCount int        `json:"item_count"`
}

// Cart writes the cart in the configured format.
func (f *OutputFormatter) Cart(dto *get_cart.CartDTO) error {
	if f.Format == "json" {
		return f.cartJSON(dto)
	}
	return f.cartText(dto)
}

func (f *OutputFormatter) cartJSON(dto *get_cart.CartDTO) error {
	out := jsonCart{
		CartID:    dto.CartID,
		Items:     make([]jsonItem, 0, len(dto.Items)),
		Total:     dto.Total.RatString(),
		ItemCount: dto.ItemCount,
	}
	for _, item := range dto.Items {
		out.Items = append(out.Items, jsonItem{
			ID:          item.ID.String(),
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			SizeID:      item.SizeID,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.RatString(),
			LineTotal:   item.LineTotal.RatString(),
			State:       string(item.State),
		})
	}

	enc := json.NewEncoder(f.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func (f *OutputFormatter) cartText(dto *get_cart.CartDTO) error {
	if len(dto.Items) == 0 {
		_, err := fmt.Fprintln(f.Writer, "cart is empty")
		return err
	}

	tw := tabwriter.NewWriter(f.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPRODUCT\tSIZE\tQTY\tUNIT\tTOTAL")
	for _, item := range dto.Items {
		size := item.SizeID
		if size == "" {
			size = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
			item.ID, item.ProductName, size, item.Quantity, item.UnitPrice, item.LineTotal)
	}
	fmt.Fprintf(tw, "\t\t\t%d\t\t%s\n", dto.ItemCount, dto.Total)
	return tw.Flush()
}
