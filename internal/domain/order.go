package domain

import "time"

// Payment status values for an order.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

// Order status values. Transitions past "processing" belong to
// fulfillment, not to the cart/checkout core.
const (
	OrderProcessing = "processing"
	OrderConfirmed  = "confirmed"
	OrderDelivered  = "delivered"
	OrderInstalled  = "installed"
)

// OrderLine is a denormalized copy of a cart row taken at checkout time.
// Later catalog changes never alter historical orders.
type OrderLine struct {
	FurnitureID string `json:"furnitureId" bson:"furnitureId"`
	Name        string `json:"name" bson:"name"`
	Price       int64  `json:"price" bson:"price"`
	Quantity    int    `json:"quantity" bson:"quantity"`
	ImageURL    string `json:"imageUrl" bson:"imageUrl"`
}

// Order is an immutable record built from a cart snapshot.
type Order struct {
	ID               string      `json:"id" bson:"_id"`
	UserID           string      `json:"userId" bson:"userId"`
	RoomDesignID     string      `json:"roomDesignId,omitempty" bson:"roomDesignId,omitempty"`
	Items            []OrderLine `json:"items" bson:"items"`
	TotalAmount      int64       `json:"totalAmount" bson:"totalAmount"`
	InstallationDate string      `json:"installationDate" bson:"installationDate"`
	PaymentMethod    string      `json:"paymentMethod" bson:"paymentMethod"`
	PaymentStatus    string      `json:"paymentStatus" bson:"paymentStatus"`
	OrderStatus      string      `json:"orderStatus" bson:"orderStatus"`
	CreatedAt        time.Time   `json:"createdAt" bson:"createdAt"`
}

// ShippingInfo is the contact block required at checkout. Presence of the
// four fields is validated; formats are not.
type ShippingInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}
