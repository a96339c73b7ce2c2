package main

import (
	"context"
	"log"
	"net/http"

	webAdapter "billfold/internal/adapters/web"
	"billfold/internal/ai"
	"billfold/internal/app"
	"billfold/internal/config"
	"billfold/internal/core"
	"billfold/internal/db"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	if cfg.OpenAIAPIKey == "" {
		log.Println("Warning: OPENAI_API_KEY is not set — message suggestions will fail")
	}

	svc := app.NewAppService(
		core.NewAdminService(pool),
		core.NewClientService(pool, core.DeletePolicy(cfg.ClientDeleteMode)),
		core.NewProductService(pool),
		core.NewPricingService(pool),
		core.NewBillingService(pool),
		core.NewPaymentService(pool),
		core.NewReportService(pool),
		core.NewAuditService(pool),
		ai.NewSuggester(cfg.OpenAIAPIKey),
	)

	handler := webAdapter.NewHandler(svc, cfg.AllowedOrigins, cfg.JWTSecret)

	log.Printf("server starting on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		log.Fatalf("server: %v", err)
	}
}
