package db

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

var Conn *pgxpool.Pool

// Init connects to Postgres and makes sure the schema the handlers
// rely on exists.
func Init(dsn string) {
	var err error
	Conn, err = pgxpool.New(context.Background(), dsn)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}

	if err = Conn.Ping(context.Background()); err != nil {
		log.Fatalf("Unable to ping database: %v\n", err)
	}

	log.Println("Connected to Postgres successfully")

	ensureHostelsTable()
	ensureUsersTable()
	ensureItemsTable()
	ensureItemInterestsTable()
	ensureAdminColumn()
}

// ensureHostelsTable creates the hostels table and its lookup indexes
func ensureHostelsTable() {
	ctx := context.Background()
	_, err := Conn.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS hostels (
            id UUID PRIMARY KEY,
            name TEXT NOT NULL UNIQUE,
            street TEXT NOT NULL,
            city TEXT NOT NULL,
            state TEXT NOT NULL,
            zip_code TEXT NOT NULL,
            country TEXT NOT NULL DEFAULT 'India',
            contact_phone TEXT NOT NULL,
            contact_email TEXT NOT NULL,
            total_rooms INTEGER NOT NULL CHECK (total_rooms >= 1),
            facilities TEXT[] NOT NULL DEFAULT '{}',
            description TEXT NOT NULL DEFAULT '',
            university TEXT NOT NULL,
            is_active BOOLEAN NOT NULL DEFAULT TRUE,
            total_users INTEGER NOT NULL DEFAULT 0,
            total_active_items INTEGER NOT NULL DEFAULT 0,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
            updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
        );
        CREATE INDEX IF NOT EXISTS idx_hostels_university ON hostels(university);
        CREATE INDEX IF NOT EXISTS idx_hostels_name_active ON hostels(name, is_active);
    `)
	if err != nil {
		log.Printf("failed to create hostels table: %v", err)
	}
}

// ensureUsersTable creates the users table with seller workflow fields
func ensureUsersTable() {
	ctx := context.Background()
	_, err := Conn.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS users (
            id UUID PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT NOT NULL UNIQUE,
            password TEXT NOT NULL,
            phone_number TEXT NOT NULL,
            room_number TEXT NOT NULL,
            hostel_id UUID NOT NULL REFERENCES hostels(id),
            avatar TEXT,
            rating DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (rating >= 0 AND rating <= 5),
            total_ratings INTEGER NOT NULL DEFAULT 0,
            items_sold INTEGER NOT NULL DEFAULT 0,
            items_rented INTEGER NOT NULL DEFAULT 0,
            is_seller BOOLEAN NOT NULL DEFAULT FALSE,
            seller_status TEXT NOT NULL DEFAULT 'not_applied'
                CHECK (seller_status IN ('not_applied', 'pending', 'approved', 'rejected')),
            seller_availability TEXT,
            seller_description TEXT,
            seller_applied_at TIMESTAMP WITH TIME ZONE,
            seller_approved_at TIMESTAMP WITH TIME ZONE,
            seller_rejected_at TIMESTAMP WITH TIME ZONE,
            seller_rejection_reason TEXT,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
            updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
        );
        CREATE INDEX IF NOT EXISTS idx_users_hostel_email ON users(hostel_id, email);
        CREATE INDEX IF NOT EXISTS idx_users_seller_status ON users(seller_status);
    `)
	if err != nil {
		log.Printf("failed to create users table: %v", err)
	}
}

// ensureItemsTable creates the items table. The rent_duration CHECK
// encodes the rule that rentals must carry a duration and sales must
// not.
func ensureItemsTable() {
	ctx := context.Background()
	_, err := Conn.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS items (
            id UUID PRIMARY KEY,
            title TEXT NOT NULL,
            description TEXT NOT NULL,
            category TEXT NOT NULL CHECK (category IN (
                'Electronics', 'Books', 'Furniture', 'Clothing', 'Kitchen',
                'Sports', 'Study Materials', 'Appliances', 'Accessories', 'Other'
            )),
            condition TEXT NOT NULL CHECK (condition IN ('New', 'Like New', 'Good', 'Fair', 'Poor')),
            listing_type TEXT NOT NULL CHECK (listing_type IN ('sell', 'rent')),
            price NUMERIC NOT NULL CHECK (price >= 0),
            rent_duration TEXT CHECK (rent_duration IN ('hour', 'day', 'week', 'month')),
            images TEXT[] NOT NULL DEFAULT '{}',
            tags TEXT[] NOT NULL DEFAULT '{}',
            specifications JSONB NOT NULL DEFAULT '{}',
            seller_id UUID NOT NULL REFERENCES users(id),
            hostel_id UUID NOT NULL REFERENCES hostels(id),
            status TEXT NOT NULL DEFAULT 'available'
                CHECK (status IN ('available', 'sold', 'rented', 'reserved')),
            views INTEGER NOT NULL DEFAULT 0,
            is_promoted BOOLEAN NOT NULL DEFAULT FALSE,
            promoted_until TIMESTAMP WITH TIME ZONE,
            is_active BOOLEAN NOT NULL DEFAULT TRUE,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
            updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
            CONSTRAINT items_rent_duration_check CHECK (
                (listing_type = 'rent' AND rent_duration IS NOT NULL) OR
                (listing_type = 'sell' AND rent_duration IS NULL)
            )
        );
        CREATE INDEX IF NOT EXISTS idx_items_hostel_status_active ON items(hostel_id, status, is_active);
        CREATE INDEX IF NOT EXISTS idx_items_category_type ON items(category, listing_type);
        CREATE INDEX IF NOT EXISTS idx_items_seller_status ON items(seller_id, status);
        CREATE INDEX IF NOT EXISTS idx_items_created ON items(created_at DESC);
        CREATE INDEX IF NOT EXISTS idx_items_price ON items(price);
    `)
	if err != nil {
		log.Printf("failed to create items table: %v", err)
	}
}

// ensureItemInterestsTable creates the interest association table. The
// primary key makes "one interest per item and user" a storage
// invariant rather than a handler check.
func ensureItemInterestsTable() {
	ctx := context.Background()
	_, err := Conn.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS item_interests (
            item_id UUID NOT NULL REFERENCES items(id) ON DELETE CASCADE,
            user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            contacted_at TIMESTAMP WITH TIME ZONE,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
            PRIMARY KEY (item_id, user_id)
        );
        CREATE INDEX IF NOT EXISTS idx_item_interests_user ON item_interests(user_id);
    `)
	if err != nil {
		log.Printf("failed to create item_interests table: %v", err)
	}
}

// ensureAdminColumn adds users.is_admin if missing
func ensureAdminColumn() {
	ctx := context.Background()
	var exists bool
	err := Conn.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT 1 FROM information_schema.columns
            WHERE table_schema = 'public' AND table_name = 'users' AND column_name = 'is_admin'
        )`).Scan(&exists)
	if err != nil {
		log.Printf("schema check failed: %v", err)
		return
	}
	if exists {
		return
	}
	_, err = Conn.Exec(ctx, `ALTER TABLE users ADD COLUMN IF NOT EXISTS is_admin BOOLEAN DEFAULT FALSE`)
	if err != nil {
		log.Printf("failed to add is_admin column: %v", err)
		return
	}
	_, err = Conn.Exec(ctx, `UPDATE users SET is_admin = FALSE WHERE is_admin IS NULL`)
	if err != nil {
		log.Printf("failed to backfill is_admin: %v", err)
		return
	}
	log.Printf("users.is_admin column ensured")
}
