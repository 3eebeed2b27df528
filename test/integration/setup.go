package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"warranty-vault/internal/model"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	// Create schema
	createSchema(t, pool)

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// createSchema creates the database schema for testing. Mirrors the embedded
// migrations without the pgcrypto extension, which the alpine image lacks a
// superuser grant for in some setups; IDs are generated in Go anyway.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS categories (
			id          UUID PRIMARY KEY,
			name        TEXT NOT NULL,
			slug        TEXT NOT NULL UNIQUE,
			icon        TEXT NOT NULL DEFAULT 'package',
			color       TEXT NOT NULL DEFAULT '#94a3b8',
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS profiles (
			user_id            UUID PRIMARY KEY,
			full_name          TEXT,
			currency           TEXT NOT NULL DEFAULT 'EUR',
			language           TEXT NOT NULL DEFAULT 'en',
			notification_days  INTEGER[] NOT NULL DEFAULT '{30, 7, 1}',
			created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at         TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS products (
			id                   UUID PRIMARY KEY,
			user_id              UUID NOT NULL,
			category_id          UUID REFERENCES categories (id) ON DELETE SET NULL,
			name                 TEXT NOT NULL,
			brand                TEXT,
			model                TEXT,
			serial_number        TEXT,
			purchase_date        DATE NOT NULL,
			purchase_price       NUMERIC(12, 2) CHECK (purchase_price >= 0),
			currency             TEXT NOT NULL DEFAULT 'EUR',
			retailer_name        TEXT,
			retailer_phone       TEXT,
			retailer_email       TEXT,
			retailer_website     TEXT,
			warranty_months      INTEGER NOT NULL CHECK (warranty_months > 0),
			eu_statutory_months  INTEGER NOT NULL CHECK (eu_statutory_months > 0),
			notes                TEXT,
			receipt_key          TEXT,
			manual_key           TEXT,
			image_key            TEXT,
			is_transferred       BOOLEAN NOT NULL DEFAULT FALSE,
			transfer_date        DATE,
			transfer_buyer_name  TEXT,
			is_active            BOOLEAN NOT NULL DEFAULT TRUE,
			created_at           TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at           TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS claim_logs (
			id           UUID PRIMARY KEY,
			product_id   UUID NOT NULL REFERENCES products (id) ON DELETE CASCADE,
			user_id      UUID NOT NULL,
			title        TEXT NOT NULL,
			description  TEXT,
			status       TEXT NOT NULL DEFAULT 'pending'
				CHECK (status IN ('pending', 'submitted', 'in_review', 'approved', 'rejected', 'resolved')),
			resolution   TEXT,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`

	_, err := pool.Exec(ctx, schema)
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// SeedCategory inserts one category and returns its ID.
func SeedCategory(t *testing.T, pool *pgxpool.Pool, name, slug string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		"INSERT INTO categories (id, name, slug) VALUES ($1, $2, $3)",
		id, name, slug,
	)
	if err != nil {
		t.Fatalf("failed to seed category %s: %v", slug, err)
	}
	return id
}

// SeedProduct inserts one product for the user and returns it.
func SeedProduct(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, name string, purchaseDate time.Time, warrantyMonths int, price decimal.Decimal) model.Product {
	t.Helper()

	now := time.Now().UTC()
	p := model.Product{
		ID:                uuid.New(),
		UserID:            userID,
		Name:              name,
		PurchaseDate:      purchaseDate,
		PurchasePrice:     decimal.NewNullDecimal(price),
		Currency:          "EUR",
		WarrantyMonths:    warrantyMonths,
		EUStatutoryMonths: 24,
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO products (
			id, user_id, name, purchase_date, purchase_price, currency,
			warranty_months, eu_statutory_months, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.ID, p.UserID, p.Name, p.PurchaseDate, p.PurchasePrice, p.Currency,
		p.WarrantyMonths, p.EUStatutoryMonths, p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to seed product %s: %v", name, err)
	}
	return p
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"claim_logs", "products", "profiles", "categories"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
