package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/light-bringer/cartsync-service/internal/app/cart/contracts"
	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
)

// UserIDHeader identifies the caller of the cart endpoint.
const UserIDHeader = "X-User-Id"

// CartHandler serves the persisted cart of the calling user.
type CartHandler struct {
	repo   contracts.CartRepository
	logger *zap.Logger
}

// NewCartHandler creates a new HTTP cart handler.
func NewCartHandler(repo contracts.CartRepository, logger *zap.Logger) *CartHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartHandler{
		repo:   repo,
		logger: logger,
	}
}

// Item represents a cart line in the HTTP response.
type Item struct {
	ID          string `json:"id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	SizeID      string `json:"size_id,omitempty"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	LineTotal   string `json:"line_total"`
	AddedAt     string `json:"added_at"`
}

// GetCartResponse represents the HTTP response for reading a cart.
type GetCartResponse struct {
	Items     []Item `json:"items"`
	Total     string `json:"total"`
	ItemCount int    `json:"item_count"`
}

// ServeHTTP handles GET /api/v1/cart requests.
func (h *CartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := strings.TrimSpace(r.Header.Get(UserIDHeader))

	// Anonymous callers have no persisted cart
	items := []*domain.CartItem{}
	if userID != "" {
		var err error
		items, err = h.repo.List(r.Context(), userID)
		if err != nil {
			h.logger.Error("failed to list cart", zap.String("user_id", userID), zap.Error(err))
			http.Error(w, "Failed to fetch cart", http.StatusInternalServerError)
			return
		}
	}

	totals := domain.CalculateTotals(items)
	response := GetCartResponse{
		Items:     make([]Item, 0, len(items)),
		Total:     totals.Total.RatString(),
		ItemCount: totals.ItemCount,
	}
	for _, item := range items {
		response.Items = append(response.Items, Item{
			ID:          item.ID().Value(),
			ProductID:   item.ProductID(),
			ProductName: item.Product().Name,
			SizeID:      item.SizeID(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice().RatString(),
			LineTotal:   item.LineTotal().RatString(),
			AddedAt:     item.AddedAt().Format(time.RFC3339),
		})
	}

	// Send JSON response
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Warn("failed to encode cart response", zap.Error(err))
	}
}
