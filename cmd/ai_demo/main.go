package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/Loganocm/Parlor/internal/ai"
	"github.com/Loganocm/Parlor/internal/logger"
	"github.com/Loganocm/Parlor/internal/types"
)

func main() {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal("GEMINI_API_KEY environment variable not set")
	}

	ctx := context.Background()
	provider, err := ai.NewGeminiProvider(ctx, apiKey)
	if err != nil {
		log.Fatalf("Failed to initialize AI provider: %v", err)
	}
	defer provider.Close()

	svc := ai.NewService(provider, logger.New("info", "development"))

	// Simulated restaurant and reviews
	restaurant := types.Restaurant{
		ID:       "demo-1",
		Name:     "Regina's North End Pizzeria",
		Address:  "11 Thacher St, Boston, MA",
		Rating:   4.6,
		Distance: 1.2,
		Cuisine:  []string{"Pizza", "Italian"},
	}
	reviews := []ai.Review{
		{Rating: 5, Text: "Best brick oven pizza in the city, worth the wait."},
		{Rating: 4, Text: "Crust is perfect, the line moves fast."},
		{Rating: 3, Text: "Cash only and cramped, but the pizza delivers."},
	}

	fmt.Printf("Restaurant: %s (%.1f★)\n", restaurant.Name, restaurant.Rating)

	summary := svc.GenerateRestaurantSummary(ctx, restaurant, reviews, nil)

	fmt.Printf("Summary: %s\n", summary.Summary)
	for _, h := range summary.Highlights {
		fmt.Printf("Highlight: %s\n", h)
	}
	for _, r := range summary.Recommendations {
		fmt.Printf("Recommendation: %s\n", r)
	}
}
