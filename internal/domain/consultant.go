package domain

import "time"

// Consultant types.
const (
	ConsultantVastu    = "vastu"
	ConsultantInterior = "interior"
)

// Consultant is a bookable vastu or interior-design expert. Rating is
// stored as stars times ten (49 means 4.9).
type Consultant struct {
	ID              string    `json:"id" bson:"_id"`
	Name            string    `json:"name" bson:"name"`
	Type            string    `json:"type" bson:"type"`
	Experience      int       `json:"experience" bson:"experience"`
	Rating          int       `json:"rating" bson:"rating"`
	ReviewCount     int       `json:"reviewCount" bson:"reviewCount"`
	Specializations []string  `json:"specializations" bson:"specializations"`
	Price           int64     `json:"price" bson:"price"`
	Availability    string    `json:"availability" bson:"availability"`
	Bio             string    `json:"bio,omitempty" bson:"bio,omitempty"`
	ImageURL        string    `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	CreatedAt       time.Time `json:"createdAt" bson:"createdAt"`
}

// Booking statuses.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
)

// Booking is a consultation request against a consultant.
type Booking struct {
	ID               string    `json:"id" bson:"_id"`
	UserID           string    `json:"userId" bson:"userId"`
	ConsultantID     string    `json:"consultantId" bson:"consultantId"`
	Name             string    `json:"name" bson:"name"`
	Email            string    `json:"email" bson:"email"`
	Phone            string    `json:"phone" bson:"phone"`
	PropertyType     string    `json:"propertyType" bson:"propertyType"`
	ConsultationType string    `json:"consultationType" bson:"consultationType"`
	PreferredDate    string    `json:"preferredDate" bson:"preferredDate"`
	PreferredTime    string    `json:"preferredTime" bson:"preferredTime"`
	Requirements     string    `json:"requirements,omitempty" bson:"requirements,omitempty"`
	Status           string    `json:"status" bson:"status"`
	TotalAmount      int64     `json:"totalAmount" bson:"totalAmount"`
	CreatedAt        time.Time `json:"createdAt" bson:"createdAt"`
}
