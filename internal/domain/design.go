package domain

import "time"

// Room types used by the catalog and the design studio.
const (
	RoomLivingRoom = "living_room"
	RoomBedroom    = "bedroom"
	RoomKitchen    = "kitchen"
	RoomDining     = "dining"
	RoomOffice     = "office"
)

// RoomDesign is a saved design document: a room, a design approach and a
// free-form bag of chosen elements (furniture, colors, materials).
type RoomDesign struct {
	ID         string         `json:"id" bson:"_id"`
	UserID     string         `json:"userId" bson:"userId"`
	Title      string         `json:"title" bson:"title"`
	RoomType   string         `json:"roomType" bson:"roomType"`
	DesignType string         `json:"designType" bson:"designType"`
	Theme      string         `json:"theme,omitempty" bson:"theme,omitempty"`
	Elements   map[string]any `json:"elements" bson:"elements"`
	ImageURL   string         `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	CreatedAt  time.Time      `json:"createdAt" bson:"createdAt"`
}

// PlacedItem is an ephemeral association between a catalog item and a 2D
// position on the studio canvas. It exists only inside a design session
// and is never persisted on its own.
type PlacedItem struct {
	ID          string  `json:"id"`
	FurnitureID string  `json:"furnitureId"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Rotation    float64 `json:"rotation"`
	Scale       float64 `json:"scale"`
}

// Rect is an axis-aligned rectangle in the 0-100 percentage frame of the
// placement surface. Keep-out regions (door swing paths and similar) are
// expressed as Rects.
type Rect struct {
	MinX float64 `json:"minX"`
	MaxX float64 `json:"maxX"`
	MinY float64 `json:"minY"`
	MaxY float64 `json:"maxY"`
}

// Contains reports whether the point lies inside the rectangle, borders
// included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}
