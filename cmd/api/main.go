package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ariefcatur/go-storefront-checkout.git/internal/auth"
	"github.com/ariefcatur/go-storefront-checkout.git/internal/checkout"
	"github.com/ariefcatur/go-storefront-checkout.git/internal/config"
	"github.com/ariefcatur/go-storefront-checkout.git/internal/httpx"
	kafkax "github.com/ariefcatur/go-storefront-checkout.git/internal/kafka"
	"github.com/ariefcatur/go-storefront-checkout.git/internal/postgres"
	"github.com/ariefcatur/go-storefront-checkout.git/internal/redisx"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	if err := postgres.Migrate(cfg.PostgresDSN); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producer
	prod := kafkax.NewProducer(cfg.KafkaBrokers, checkout.TopicOrderCreated, 1024)
	prod.Start(ctx)

	// Stores & services
	catalog := &checkout.CatalogRepo{DB: db}
	addresses := &checkout.AddressRepo{DB: db}
	carts := &checkout.CartService{Store: &checkout.CartRepo{DB: db}, Redis: rdb}
	orders := &checkout.OrderRepo{DB: db}

	ingest := &checkout.Service{
		Orders:      orders,
		Catalog:     catalog,
		Addresses:   addresses,
		Carts:       carts,
		Producer:    prod,
		ServiceName: cfg.ServiceName,
	}
	query := &checkout.QueryService{Store: orders, Catalog: catalog}

	// Router & handlers
	router := httpx.NewRouter()
	router.Use(httpx.WithIdentity(&auth.SessionVerifier{Redis: rdb}))
	(&httpx.OrdersHandler{Ingest: ingest, Query: query, Catalog: catalog}).Register(router)
	(&httpx.CartHandler{Carts: carts, Catalog: catalog}).Register(router)
	(&httpx.AddressHandler{Book: addresses}).Register(router)

	// HTTP server
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	// wait signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prod.Close()      // close inbox -> flush & close writer
	cancel()          // stop producer loop
	prod.WaitClosed() // drain
}
