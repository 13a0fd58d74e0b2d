package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"lastbite/internal/infra/db"
	"lastbite/internal/infra/uow"
	"lastbite/internal/pkg/clock"
	"lastbite/internal/pkg/config"
	"lastbite/internal/usecase/commands"
)

func strPtr(s string) *string       { return &s }
func f64Ptr(f float64) *float64     { return &f }
func timePtr(t time.Time) *time.Time { return &t }

// Seeds a demo restaurant with three offers for local development. Prints the
// generated API key; it cannot be recovered later.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	ctx := context.Background()
	unit := uow.NewPostgresUoW(pool)
	clk := clock.NewRealClock()

	merchants := commands.NewMerchantUseCase(unit)
	offers := commands.NewOfferUseCase(unit, clk)

	reg, err := merchants.Register(ctx, commands.RegisterMerchantRequest{
		Title:   "Demo Trattoria",
		Phone:   strPtr("+1-555-0100"),
		City:    strPtr("Lisbon"),
		Address: strPtr("Rua Augusta 12"),
		Lat:     f64Ptr(38.7101),
		Lon:     f64Ptr(-9.1365),
	})
	if err != nil {
		slog.Error("failed to seed restaurant", "error", err)
		os.Exit(1)
	}

	now := clk.Now()
	seedOffers := []commands.CreateOfferRequest{
		{
			Title:         "Margherita pizza slice",
			Description:   strPtr("Last slices of the day, still warm"),
			Price:         3.50,
			OriginalPrice: f64Ptr(7.00),
			QtyTotal:      4,
			ExpiresAt:     timePtr(now.Add(45 * time.Minute)),
		},
		{
			Title:         "Sushi set for two",
			Description:   strPtr("12 pieces, made this afternoon"),
			Price:         9.90,
			OriginalPrice: f64Ptr(19.80),
			QtyTotal:      2,
			ExpiresAt:     timePtr(now.Add(2 * time.Hour)),
		},
		{
			Title:       "Bakery surprise bag",
			Description: strPtr("Whatever is left on the shelf"),
			Price:       4.00,
			QtyTotal:    6,
		},
	}
	for _, req := range seedOffers {
		if _, err := offers.CreateOffer(ctx, reg.ID, req); err != nil {
			slog.Error("failed to seed offer", "title", req.Title, "error", err)
			os.Exit(1)
		}
	}

	slog.Info("seed complete",
		"restaurant_id", reg.ID.String(),
		"api_key", reg.APIKey,
		"offers", len(seedOffers),
	)
}
