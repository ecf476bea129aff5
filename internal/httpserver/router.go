package httpserver

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"rocketshoes/internal/domain"
	cartsvc "rocketshoes/internal/service/cart"
	"rocketshoes/internal/service/listing"
)

type listingService interface {
	Products(ctx context.Context) ([]listing.Product, error)
	AddProduct(ctx context.Context, productID int) error
}

type cartService interface {
	Cart() domain.Cart
	RemoveProduct(ctx context.Context, productID int) error
	UpdateProductAmount(ctx context.Context, in cartsvc.UpdateProductAmount) error
}

type notificationFeed interface {
	Drain() []domain.Notification
}

type pinger interface {
	Ping(ctx context.Context) error
}

// Deps groups the services the router needs.
type Deps struct {
	Listing       listingService
	Cart          cartService
	Notifications notificationFeed
	Storage       pinger
}

// Options tunes the router.
type Options struct {
	CORSOrigins []string
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, deps Deps, opts Options) (*gin.Engine, error) {
	if deps.Listing == nil || deps.Cart == nil || deps.Notifications == nil {
		return nil, errors.New("httpserver: listing, cart and notification services are required")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(requestIDMiddleware(), gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(corsConfig(opts.CORSOrigins)))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.Storage))

	h := &handlers{listing: deps.Listing, cart: deps.Cart, notifications: deps.Notifications}
	router.GET("/products", h.listProducts)
	router.GET("/cart", h.getCart)
	router.POST("/cart/items/:productId", h.addProduct)
	router.PUT("/cart/items/:productId", h.updateProductAmount)
	router.DELETE("/cart/items/:productId", h.removeProduct)
	router.GET("/notifications", h.drainNotifications)

	return router, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", requestIDHeader},
		ExposeHeaders: []string{requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
