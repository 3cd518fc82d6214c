package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/fresnizky/pizza-delivery-api/config"
	"github.com/fresnizky/pizza-delivery-api/mailer"
	"github.com/fresnizky/pizza-delivery-api/models"
	"github.com/fresnizky/pizza-delivery-api/payments"
	"github.com/fresnizky/pizza-delivery-api/routes"
	"github.com/fresnizky/pizza-delivery-api/store"
)

func main() {
	log.Println("✅ Starting application...")

	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Config failed: %v", err)
	}

	// Init DB
	db := initDatabase(cfg)

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.Token{},
		&models.Cart{},
		&models.CartItem{},
		&models.MenuItem{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	stores := store.NewGormStores(db)
	seedMenu(stores)

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "token", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup routes
	routes.SetupRoutes(r, routes.Deps{
		Stores:   stores,
		Cfg:      cfg,
		Payer:    payments.NewStripe(cfg),
		Notifier: mailer.NewMailgun(cfg),
	})

	// Sweep expired tokens every hour
	go startTokenSweeper(stores.Tokens, time.Hour)

	// Start server
	log.Printf("🚀 Server running on port %s...", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase(cfg *config.Config) *gorm.DB {
	if cfg.DatabaseURL != "" {
		db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("❌ DB connection failed: %v", err)
		}
		return db
	}

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to connect DB: %v", err)
	}
	return db
}

// seedMenu loads the default catalog on an empty database so a fresh
// install can take orders before the admin touches the menu.
func seedMenu(stores *store.Stores) {
	ctx := context.Background()

	items, err := stores.Menu.Items(ctx)
	if err != nil {
		log.Printf("❌ Failed to read menu: %v", err)
		return
	}
	if len(items) > 0 {
		return
	}

	defaults := []models.MenuItem{
		{Type: "margherita", Size: "small", Price: 8},
		{Type: "margherita", Size: "medium", Price: 10},
		{Type: "margherita", Size: "large", Price: 12},
		{Type: "pepperoni", Size: "small", Price: 9},
		{Type: "pepperoni", Size: "medium", Price: 11},
		{Type: "pepperoni", Size: "large", Price: 13},
		{Type: "hawaiian", Size: "small", Price: 9},
		{Type: "hawaiian", Size: "medium", Price: 11},
		{Type: "hawaiian", Size: "large", Price: 13},
		{Type: "veggie", Size: "small", Price: 8},
		{Type: "veggie", Size: "medium", Price: 10},
		{Type: "veggie", Size: "large", Price: 12},
	}
	for i := range defaults {
		if err := stores.Menu.Upsert(ctx, &defaults[i]); err != nil {
			log.Printf("❌ Failed to seed menu item %s/%s: %v", defaults[i].Type, defaults[i].Size, err)
		}
	}
	log.Printf("✅ Seeded menu with %d items", len(defaults))
}

// startTokenSweeper deletes expired tokens on a fixed interval
func startTokenSweeper(tokens store.Tokens, interval time.Duration) {
	for {
		time.Sleep(interval)

		n, err := tokens.DeleteExpired(context.Background(), time.Now())
		if err != nil {
			log.Printf("❌ Failed to purge expired tokens: %v", err)
			continue
		}
		if n > 0 {
			log.Printf("🗑️ Purged %d expired tokens", n)
		}
	}
}
