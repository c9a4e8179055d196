package cmd

import (
	"fmt"
	"os"
	"time"

	"seller-service/internal/config"
	"seller-service/pkg/logger"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert sample sellers",
	Long:  "Insert a small set of sample sellers for local development and demos",
	Run:   runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

type sellerSeed struct {
	SellerID           uuid.UUID `db:"seller_id"`
	UserID             uuid.UUID `db:"user_id"`
	BusinessName       string    `db:"business_name"`
	BusinessType       string    `db:"business_type"`
	BusinessEmail      string    `db:"business_email"`
	BusinessPhone      string    `db:"business_phone"`
	BusinessAddress    string    `db:"business_address"`
	BusinessCity       string    `db:"business_city"`
	BusinessState      string    `db:"business_state"`
	BusinessCountry    string    `db:"business_country"`
	Status             string    `db:"status"`
	VerificationStatus string    `db:"verification_status"`
	Rating             float64   `db:"rating"`
	TotalSales         int       `db:"total_sales"`
	TotalRevenue       float64   `db:"total_revenue"`
	CreatedAt          time.Time `db:"created_at"`
}

func runSeed(cmd *cobra.Command, args []string) {
	cfg := config.Get()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		cfg.Database.Host, cfg.Database.Username, cfg.Database.Password,
		cfg.Database.Name, cfg.Database.Port, cfg.Database.SSLMode)

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		logger.Error("Failed to connect to database: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	seeds := []sellerSeed{
		{
			SellerID:           uuid.New(),
			UserID:             uuid.New(),
			BusinessName:       "Acme Outfitters",
			BusinessType:       "llc",
			BusinessEmail:      "hello@acme-outfitters.example",
			BusinessPhone:      "+1-555-0100",
			BusinessAddress:    "1 Market Street",
			BusinessCity:       "San Francisco",
			BusinessState:      "CA",
			BusinessCountry:    "US",
			Status:             "active",
			VerificationStatus: "verified",
			Rating:             4.6,
			TotalSales:         128,
			TotalRevenue:       15420.50,
			CreatedAt:          time.Now().Add(-90 * 24 * time.Hour),
		},
		{
			SellerID:           uuid.New(),
			UserID:             uuid.New(),
			BusinessName:       "Blue Harbor Crafts",
			BusinessType:       "sole_proprietor",
			BusinessEmail:      "contact@blueharbor.example",
			BusinessPhone:      "+1-555-0101",
			BusinessAddress:    "22 Dock Road",
			BusinessCity:       "Portland",
			BusinessState:      "OR",
			BusinessCountry:    "US",
			Status:             "pending",
			VerificationStatus: "pending",
			CreatedAt:          time.Now().Add(-7 * 24 * time.Hour),
		},
		{
			SellerID:           uuid.New(),
			UserID:             uuid.New(),
			BusinessName:       "Nordlicht Imports",
			BusinessType:       "corporation",
			BusinessEmail:      "sales@nordlicht.example",
			BusinessPhone:      "+49-555-0102",
			BusinessAddress:    "Hafenstrasse 9",
			BusinessCity:       "Hamburg",
			BusinessState:      "HH",
			BusinessCountry:    "DE",
			Status:             "pending",
			VerificationStatus: "unverified",
			CreatedAt:          time.Now().Add(-24 * time.Hour),
		},
	}

	const insertSeller = `
		INSERT INTO sellers (
			seller_id, user_id, business_name, business_type, business_email,
			business_phone, business_address, business_city, business_state,
			business_country, status, verification_status, rating,
			total_sales, total_revenue, created_at, updated_at
		) VALUES (
			:seller_id, :user_id, :business_name, :business_type, :business_email,
			:business_phone, :business_address, :business_city, :business_state,
			:business_country, :status, :verification_status, :rating,
			:total_sales, :total_revenue, :created_at, :created_at
		) ON CONFLICT (user_id) DO NOTHING`

	inserted := 0
	for _, seed := range seeds {
		result, err := db.NamedExec(insertSeller, seed)
		if err != nil {
			logger.Error("Failed to insert seed seller %s: %v", seed.BusinessName, err)
			os.Exit(1)
		}
		if rows, err := result.RowsAffected(); err == nil {
			inserted += int(rows)
		}
	}

	fmt.Printf("Seeded %d sellers\n", inserted)
}
