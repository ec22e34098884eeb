package main

import (
	"context"
	"fmt"
	"log"

	"github.com/osse101/FleaMarket_Go/internal/bootstrap"
	"github.com/osse101/FleaMarket_Go/internal/config"
)

// debug dumps the persisted market state of the configured database.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	ctx := context.Background()

	repos, err := bootstrap.InitializeRepositories(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer repos.Close()

	if repos.Quota == nil {
		fmt.Println("Memory driver selected; nothing is persisted.")
		return
	}

	fmt.Println("--- Purchase quotas ---")
	quotas, err := repos.Quota.ListQuotas(ctx)
	if err != nil {
		log.Printf("Failed to list quotas: %v", err)
	}
	for _, q := range quotas {
		fmt.Printf("Buyer: %s, Listing: %s, Trader: %s, Count: %d\n", q.BuyerID, q.ListingID, q.TraderID, q.UnitsPurchasedThisWindow)
	}

	fmt.Println("\n--- Player offers ---")
	offers, err := repos.PlayerOffers.AllPlayerOffers(ctx)
	if err != nil {
		log.Printf("Failed to list player offers: %v", err)
	}
	for _, o := range offers {
		fmt.Printf("ID: %s, Seller: %s, Template: %s, Ends: %s\n", o.ID, o.SellerID, o.RootTemplateID(), o.EndsAt.Format("2006-01-02 15:04:05"))
	}

	fmt.Println("\n--- Seller ratings ---")
	ratings, err := repos.PlayerOffers.AllSellerRatings(ctx)
	if err != nil {
		log.Printf("Failed to list seller ratings: %v", err)
	}
	for _, r := range ratings {
		fmt.Printf("Profile: %s, Rating: %.2f, Growing: %t\n", r.ProfileID, r.Rating, r.IsRatingGrowing)
	}
}
