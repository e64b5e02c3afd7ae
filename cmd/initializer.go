package main

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/redis/go-redis/v9"

	"lumeaBack/internal/config"
	"lumeaBack/internal/discovery"
	"lumeaBack/internal/handlers"
	"lumeaBack/internal/repositories"
	"lumeaBack/internal/services"
	"lumeaBack/utils"
)

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger
	cfg      config.Config
	db       *sql.DB

	discoveryHandler *handlers.DiscoveryHandler
	promotionHandler *handlers.PromotionHandler
	walletHandler    *handlers.WalletHandler

	discoveryService *services.DiscoveryService
	promotionService *services.PromotionService

	tokens         *utils.Manager
	debounceWindow time.Duration
}

func initializeApp(db *sql.DB, rdb *redis.Client, fsClient *firestore.Client, cfg config.Config, errorLog, infoLog *log.Logger) *application {
	// Repositories
	listingRepo := repositories.ListingRepository{DB: db}
	promotionRepo := repositories.PromotionRepository{DB: db}
	walletRepo := repositories.WalletRepository{DB: db}
	counterRepo := repositories.CounterRepository{Client: rdb}

	// The discovery engine reads listings from Firestore when configured,
	// otherwise from the relational store.
	var listingSource discovery.ListingSource = &listingRepo
	if fsClient != nil {
		listingSource = &repositories.FirestoreListingSource{
			Client:     fsClient,
			Collection: cfg.Firestore.Collection,
		}
	}

	// Services
	discoveryService := services.NewDiscoveryService(listingSource, &promotionRepo, discovery.Config{
		InitialPoolSize: cfg.Discovery.InitialPoolSize,
		PageSize:        cfg.Discovery.PageSize,
		PromotedLimit:   cfg.Discovery.PromotedLimit,
	})
	walletService := services.NewWalletService(&walletRepo)
	promotionService := services.NewPromotionService(&promotionRepo, &listingRepo, walletService, &counterRepo)
	if cfg.Promotions.Cost > 0 {
		promotionService.Cost = cfg.Promotions.Cost
	}

	tokens, err := utils.NewManager(cfg.Auth.JWTSecret)
	if err != nil {
		errorLog.Fatal(err)
	}

	debounceWindow := discovery.DefaultDebounce
	if cfg.Discovery.DebounceMS > 0 {
		debounceWindow = time.Duration(cfg.Discovery.DebounceMS) * time.Millisecond
	}

	return &application{
		errorLog:         errorLog,
		infoLog:          infoLog,
		cfg:              cfg,
		db:               db,
		discoveryHandler: handlers.NewDiscoveryHandler(discoveryService),
		promotionHandler: &handlers.PromotionHandler{Service: promotionService},
		walletHandler:    &handlers.WalletHandler{Service: walletService},
		discoveryService: discoveryService,
		promotionService: promotionService,
		tokens:           tokens,
		debounceWindow:   debounceWindow,
	}
}

func openDB(driver, dsn string) (*sql.DB, error) {
	if driver == "postgres" {
		driver = "pgx"
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		log.Printf("Failed to open DB: %v", err)
		return nil, err
	}
	if err = db.Ping(); err != nil {
		log.Printf("Failed to ping DB: %v", err)
		return nil, err
	}
	db.SetMaxIdleConns(35)
	log.Println("Successfully connected to database")
	return db, nil
}

func addSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cross-Origin-Opener-Policy", "same-origin")
		w.Header().Set("Cross-Origin-Resource-Policy", "same-origin")
		next.ServeHTTP(w, r)
	})
}
