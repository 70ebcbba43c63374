package domain

import "time"

// Position is a normalized room-relative coordinate on the 0-100 scale.
type Position struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// CartItem is a durable line item owned by a user. Quantity is always >= 1.
// Repeated adds of the same furniture id create distinct rows so each row
// can carry its own placement position.
type CartItem struct {
	ID           string    `json:"id" bson:"_id"`
	UserID       string    `json:"userId" bson:"userId"`
	FurnitureID  string    `json:"furnitureId" bson:"furnitureId"`
	RoomDesignID string    `json:"roomDesignId,omitempty" bson:"roomDesignId,omitempty"`
	Quantity     int       `json:"quantity" bson:"quantity"`
	Position     *Position `json:"position,omitempty" bson:"position,omitempty"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

// CartLine is a cart row with its catalog item resolved. Furniture is nil
// when the referenced catalog item no longer exists; such rows are flagged
// to the caller and excluded from totals.
type CartLine struct {
	CartItem
	Furniture *FurnitureItem `json:"furniture,omitempty"`
	Orphaned  bool           `json:"orphaned,omitempty"`
}

// CartTotals is the derived price breakdown for a user's cart. All values
// are in the smallest currency unit.
type CartTotals struct {
	Subtotal int64 `json:"subtotal"`
	Tax      int64 `json:"tax"`
	Delivery int64 `json:"delivery"`
	Total    int64 `json:"total"`
}
