// Package main is the entry point for the college-order-service application.
//
// @title           College Order Service API
// @version         1.0.0
// @description     Multi-tenant storefront API for bookstore merchandise orders.
//
//	Stores build draft orders per college, the service enforces pack-size
//	multiples and validates the form, then emails the confirmed order to
//	the merchandise provider.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/college-order-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 API key for the upstream proxy routes. Required if AUTH_ENABLED is true.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Admin JWT as "Bearer <token>", issued by /api/v1/admin/login.
//
// @tag.name        Storefront
// @tag.description College catalogs and pack size lookups
//
// @tag.name        Drafts
// @tag.description Draft order form lifecycle
//
// @tag.name        Orders
// @tag.description Confirmed orders
//
// @tag.name        Upstream
// @tag.description College API and image proxy
//
// @tag.name        Admin
// @tag.description Admin login, orders, pack size rules and request logs
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"context"

	_ "github.com/guttosm/college-order-service/docs" // swagger docs

	"github.com/guttosm/college-order-service/config"
	"github.com/guttosm/college-order-service/internal/app"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()

	application, err := app.InitializeApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer application.Close()

	server := app.NewServer(application.Router, cfg.Server)
	if err := server.Run(context.Background()); err != nil {
		log.Error().Err(err).Msg("Server error")
	}
}
