package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/fretio/fretio/internal/config"
	"github.com/fretio/fretio/internal/db"
)

type seedHostel struct {
	name        string
	street      string
	city        string
	state       string
	zipCode     string
	country     string
	phone       string
	email       string
	totalRooms  int
	facilities  []string
	description string
	university  string
}

var sampleHostels = []seedHostel{
	{
		name: "Sunrise Hostel", street: "123 College Street", city: "Mumbai",
		state: "Maharashtra", zipCode: "400001", country: "India",
		phone: "+91-22-12345678", email: "contact@sunrisehostel.com", totalRooms: 100,
		facilities:  []string{"WiFi", "Laundry", "Common Kitchen", "Study Room", "Gym"},
		description: "A modern hostel for students with all essential amenities",
		university:  "Mumbai University",
	},
	{
		name: "Green Valley Hostel", street: "456 University Road", city: "Delhi",
		state: "Delhi", zipCode: "110001", country: "India",
		phone: "+91-11-87654321", email: "info@greenvalleyhostel.com", totalRooms: 150,
		facilities:  []string{"WiFi", "Laundry", "Common Kitchen", "Library", "Recreation Room"},
		description: "Eco-friendly hostel with green spaces and modern facilities",
		university:  "Delhi University",
	},
	{
		name: "Tech Hub Hostel", street: "789 Innovation Drive", city: "Bangalore",
		state: "Karnataka", zipCode: "560001", country: "India",
		phone: "+91-80-11223344", email: "contact@techhubhostel.com", totalRooms: 200,
		facilities:  []string{"High-Speed WiFi", "Co-working Space", "Laundry", "Cafeteria", "24/7 Security"},
		description: "Perfect for tech students and professionals",
		university:  "Bangalore Institute of Technology",
	},
	{
		name: "Moonlight Girls Hostel", street: "321 Women's Campus", city: "Mumbai",
		state: "Maharashtra", zipCode: "400002", country: "India",
		phone: "+91-22-98765432", email: "contact@moonlighthostel.com", totalRooms: 80,
		facilities:  []string{"WiFi", "Security", "Common Room", "Study Hall", "Garden"},
		description: "Safe and secure hostel for female students",
		university:  "Mumbai University",
	},
	{
		name: "Phoenix Engineering Hostel", street: "654 Tech Campus", city: "Bangalore",
		state: "Karnataka", zipCode: "560002", country: "India",
		phone: "+91-80-55443322", email: "contact@phoenixhostel.com", totalRooms: 250,
		facilities:  []string{"High-Speed WiFi", "Labs", "Workshop", "Cafeteria", "Sports Complex"},
		description: "State-of-the-art hostel for engineering students",
		university:  "Bangalore Institute of Technology",
	},
}

// seedhostels loads the sample hostel directory. Re-running updates
// existing rows by name instead of duplicating them.
// Usage:
//   go run cmd/seedhostels/main.go [-wipe]
func main() {
	wipe := flag.Bool("wipe", false, "delete existing hostels before seeding")
	flag.Parse()

	cfg := config.Load()
	db.Init(cfg.DatabaseDSN)

	ctx := context.Background()

	if *wipe {
		if _, err := db.Conn.Exec(ctx, `DELETE FROM hostels`); err != nil {
			log.Fatalf("failed to clear hostels: %v", err)
		}
		fmt.Println("Cleared existing hostels")
	}

	for i, h := range sampleHostels {
		var id string
		err := db.Conn.QueryRow(ctx, `
            INSERT INTO hostels (id, name, street, city, state, zip_code, country,
                                 contact_phone, contact_email, total_rooms,
                                 facilities, description, university, is_active)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, TRUE)
            ON CONFLICT (name) DO UPDATE SET
                street = EXCLUDED.street,
                city = EXCLUDED.city,
                state = EXCLUDED.state,
                zip_code = EXCLUDED.zip_code,
                country = EXCLUDED.country,
                contact_phone = EXCLUDED.contact_phone,
                contact_email = EXCLUDED.contact_email,
                total_rooms = EXCLUDED.total_rooms,
                facilities = EXCLUDED.facilities,
                description = EXCLUDED.description,
                university = EXCLUDED.university,
                is_active = TRUE
            RETURNING id`,
			uuid.New().String(), h.name, h.street, h.city, h.state, h.zipCode, h.country,
			h.phone, h.email, h.totalRooms, h.facilities, h.description, h.university,
		).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed hostel %q: %v", h.name, err)
		}
		fmt.Printf("%d. %s (ID: %s)\n", i+1, h.name, id)
	}

	fmt.Printf("%d hostels seeded successfully\n", len(sampleHostels))
}
