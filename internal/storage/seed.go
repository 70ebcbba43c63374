package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"homevista/internal/domain"
)

// Seed loads the demo catalog into an empty store. It checks the
// property collection first and does nothing when data already exists,
// so it is safe to run on every startup.
func Seed(ctx context.Context, store Store, log *zap.Logger) error {
	existing, err := store.ListProperties(ctx, PropertyFilter{})
	if err != nil {
		return fmt.Errorf("failed to check existing data: %w", err)
	}
	if len(existing) > 0 {
		log.Info("store already seeded, skipping")
		return nil
	}

	log.Info("seeding demo data")

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}
	for _, user := range seedUsers(string(hashed)) {
		if err := store.CreateUser(ctx, user); err != nil {
			return fmt.Errorf("failed to seed user %q: %w", user.Username, err)
		}
	}

	for _, property := range seedProperties() {
		if err := store.CreateProperty(ctx, property); err != nil {
			return fmt.Errorf("failed to seed property %q: %w", property.Title, err)
		}
	}

	for _, consultant := range seedConsultants() {
		if err := store.CreateConsultant(ctx, consultant); err != nil {
			return fmt.Errorf("failed to seed consultant %q: %w", consultant.Name, err)
		}
	}

	for _, item := range seedFurniture() {
		if err := store.CreateFurnitureItem(ctx, item); err != nil {
			return fmt.Errorf("failed to seed furniture %q: %w", item.Name, err)
		}
	}

	log.Info("seeding completed")
	return nil
}

func seedUsers(hashedPassword string) []*domain.User {
	return []*domain.User{
		{
			Username: "demo_user",
			Email:    "demo@example.com",
			FullName: "Demo User",
			Phone:    "+91 98765 43210",
			Password: hashedPassword,
		},
		{
			Username: "john_doe",
			Email:    "john@example.com",
			FullName: "John Doe",
			Phone:    "+91 98765 43211",
			Password: hashedPassword,
		},
	}
}

func seedProperties() []*domain.Property {
	return []*domain.Property{
		{
			Title:        "3BHK Apartment",
			Description:  "Spacious 3BHK apartment with modern amenities",
			Purpose:      domain.PurposeBuy,
			PropertyType: "3BHK",
			Price:        8500000,
			Location:     "HSR Layout, Bangalore",
			Facing:       "East",
			Sqft:         1250,
			Amenities:    []string{"Gym", "Swimming Pool", "Security", "Parking"},
			Tags:         []string{"Verified", "New"},
			Images: []string{
				"https://images.unsplash.com/photo-1560448204-e02f11c3d0e2?w=800&q=80",
				"https://images.unsplash.com/photo-1591474200742-8e512e6f98f8?w=800&q=80",
				"https://images.unsplash.com/photo-1502672260266-1c1ef2d93688?w=800&q=80",
				"https://images.unsplash.com/photo-1583608205776-bfd35f0d9f83?w=800&q=80",
				"https://images.unsplash.com/photo-1484154218962-a197022b5858?w=800&q=80",
			},
			OwnerName:    "Prestige Builders",
			OwnerContact: "+91 98765 43210",
			IsVerified:   true,
			IsNew:        true,
		},
		{
			Title:            "2BHK Semi-Furnished",
			Description:      "Beautiful 2BHK apartment with semi-furnished interiors",
			Purpose:          domain.PurposeRent,
			PropertyType:     "2BHK",
			Price:            18000,
			Location:         "Jubilee Hills, Hyderabad",
			Facing:           "North",
			Sqft:             950,
			Furnishing:       "Semi-Furnished",
			TenantPreference: "Family",
			Amenities:        []string{"Security", "Parking", "Balcony"},
			Tags:             []string{"Owner Posted", "Pet Friendly"},
			Images: []string{
				"https://images.unsplash.com/photo-1545324418-cc1a3fa10c00?w=800&q=80",
				"https://images.unsplash.com/photo-1586023492125-27b2c045efd7?w=800&q=80",
				"https://images.unsplash.com/photo-1558618047-3c8c76ca7d13?w=800&q=80",
				"https://images.unsplash.com/photo-1582407947304-fd86f028f716?w=800&q=80",
				"https://images.unsplash.com/photo-1571055107559-3e67626fa8be?w=800&q=80",
			},
			OwnerName:    "Rajesh Kumar",
			OwnerContact: "+91 98765 43211",
			IsVerified:   true,
		},
		{
			Title:       "Commercial Land",
			Description: "Prime commercial land near beach area",
			Purpose:     domain.PurposeLand,
			Price:       4500000,
			Location:    "Near Vizag Beach",
			Facing:      "South",
			Sqft:        6000,
			LandPurpose: "commercial",
			Amenities:   []string{"Road Access", "Water Supply"},
			Tags:        []string{"Prime Location"},
			Images: []string{
				"https://images.unsplash.com/photo-1500382017468-9049fed747ef?w=800&q=80",
				"https://images.unsplash.com/photo-1582407947304-fd86f028f716?w=800&q=80",
			},
			OwnerName:    "Coastal Developers",
			OwnerContact: "+91 98765 43212",
			IsVerified:   true,
		},
	}
}

func seedConsultants() []*domain.Consultant {
	return []*domain.Consultant{
		{
			Name:        "Dr. Rajesh Sharma",
			Type:        domain.ConsultantVastu,
			Experience:  15,
			Rating:      45,
			ReviewCount: 127,
			Specializations: []string{
				"Residential Vastu",
				"Commercial Vastu",
				"Industrial Vastu",
			},
			Price:        2500,
			Availability: "Mon-Fri: 9AM-6PM",
			Bio:          "Expert Vastu consultant with 15+ years of experience in residential and commercial projects.",
			ImageURL:     "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=400&q=80",
		},
		{
			Name:            "Priya Mehta",
			Type:            domain.ConsultantInterior,
			Experience:      8,
			Rating:          48,
			ReviewCount:     89,
			Specializations: []string{"Modern Design", "Minimalist", "Luxury Interiors"},
			Price:           3000,
			Availability:    "Tue-Sat: 10AM-7PM",
			Bio:             "Creative interior designer specializing in modern and luxury home designs.",
			ImageURL:        "https://images.unsplash.com/photo-1494790108755-2616c2c0cc49?w=400&q=80",
		},
	}
}

func seedFurniture() []*domain.FurnitureItem {
	return []*domain.FurnitureItem{
		{
			Name:             "Modern Sofa Set",
			Category:         domain.RoomLivingRoom,
			Subcategory:      "sofa",
			Price:            45000,
			Description:      "3-seater modern sofa with premium fabric",
			Dimensions:       "200cm x 90cm x 80cm",
			Material:         "Premium Fabric",
			Color:            "Gray",
			ImageURL:         "https://images.unsplash.com/photo-1555041469-a586c61ea9bc?w=400&q=80",
			InstallationTime: "2-3 days",
			RoomTypes:        []string{domain.RoomLivingRoom},
		},
		{
			Name:             "Queen Size Bed",
			Category:         domain.RoomBedroom,
			Subcategory:      "bed",
			Price:            35000,
			Description:      "Elegant queen size bed with storage",
			Dimensions:       "160cm x 200cm x 120cm",
			Material:         "Solid Wood",
			Color:            "Walnut",
			ImageURL:         "https://images.unsplash.com/photo-1505693416388-ac5ce068fe85?w=400&q=80",
			InstallationTime: "1-2 days",
			RoomTypes:        []string{domain.RoomBedroom},
		},
		{
			Name:             "Dining Table Set",
			Category:         domain.RoomDining,
			Subcategory:      "table",
			Price:            28000,
			Description:      "6-seater dining table with chairs",
			Dimensions:       "180cm x 90cm x 75cm",
			Material:         "Engineered Wood",
			Color:            "Brown",
			ImageURL:         "https://images.unsplash.com/photo-1449247709967-d4461a6a6103?w=400&q=80",
			InstallationTime: "1 day",
			RoomTypes:        []string{domain.RoomDining},
		},
	}
}
