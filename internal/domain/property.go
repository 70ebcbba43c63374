package domain

import "time"

// Property purposes.
const (
	PurposeBuy  = "buy"
	PurposeRent = "rent"
	PurposeLand = "land"
)

// Property is a real-estate listing.
type Property struct {
	ID               string    `json:"id" bson:"_id"`
	Title            string    `json:"title" bson:"title"`
	Description      string    `json:"description" bson:"description"`
	Purpose          string    `json:"purpose" bson:"purpose"`
	PropertyType     string    `json:"propertyType,omitempty" bson:"propertyType,omitempty"`
	Price            int64     `json:"price" bson:"price"`
	Location         string    `json:"location" bson:"location"`
	Facing           string    `json:"facing,omitempty" bson:"facing,omitempty"`
	Sqft             int       `json:"sqft,omitempty" bson:"sqft,omitempty"`
	Furnishing       string    `json:"furnishing,omitempty" bson:"furnishing,omitempty"`
	TenantPreference string    `json:"tenantPreference,omitempty" bson:"tenantPreference,omitempty"`
	LandPurpose      string    `json:"landPurpose,omitempty" bson:"landPurpose,omitempty"`
	Amenities        []string  `json:"amenities" bson:"amenities"`
	Tags             []string  `json:"tags" bson:"tags"`
	Images           []string  `json:"images" bson:"images"`
	OwnerName        string    `json:"ownerName" bson:"ownerName"`
	OwnerContact     string    `json:"ownerContact,omitempty" bson:"ownerContact,omitempty"`
	IsVerified       bool      `json:"isVerified" bson:"isVerified"`
	IsNew            bool      `json:"isNew" bson:"isNew"`
	IsPremium        bool      `json:"isPremium" bson:"isPremium"`
	CreatedAt        time.Time `json:"createdAt" bson:"createdAt"`
}

// SavedProperty bookmarks a property for a user.
type SavedProperty struct {
	ID         string    `json:"id" bson:"_id"`
	UserID     string    `json:"userId" bson:"userId"`
	PropertyID string    `json:"propertyId" bson:"propertyId"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
}
