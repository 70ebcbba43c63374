package domain

import "time"

// FurnitureItem is a catalog entry. Items are seeded once and never
// mutated by user actions.
type FurnitureItem struct {
	ID               string    `json:"id" bson:"_id"`
	Name             string    `json:"name" bson:"name"`
	Category         string    `json:"category" bson:"category"`
	Subcategory      string    `json:"subcategory" bson:"subcategory"`
	Price            int64     `json:"price" bson:"price"`
	Description      string    `json:"description" bson:"description"`
	Dimensions       string    `json:"dimensions" bson:"dimensions"`
	Material         string    `json:"material" bson:"material"`
	Color            string    `json:"color" bson:"color"`
	ImageURL         string    `json:"imageUrl" bson:"imageUrl"`
	InstallationTime string    `json:"installationTime" bson:"installationTime"`
	RoomTypes        []string  `json:"roomTypes" bson:"roomTypes"`
	CreatedAt        time.Time `json:"createdAt" bson:"createdAt"`
}

// FitsRoom reports whether the item is offered for the given room type.
func (f *FurnitureItem) FitsRoom(roomType string) bool {
	for _, rt := range f.RoomTypes {
		if rt == roomType {
			return true
		}
	}
	return false
}
