// Package app provides application initialization and dependency injection.
package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/college-order-service/config"
	"github.com/guttosm/college-order-service/internal/http"
)

// App is the wired application: the router plus everything that needs
// releasing on shutdown.
type App struct {
	Router   *gin.Engine
	Services *ServiceComponents
	Database *DatabaseComponents

	stopLogStore func()
}

// InitializeApp creates and wires all application dependencies.
// This is the main orchestration function that initializes all components.
func InitializeApp(cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Logger first, everything below logs.
	InitializeLogger(cfg.Log)

	dbComponents := InitializeDatabase(cfg.Database)

	serviceComponents, err := InitializeServices(cfg, dbComponents)
	if err != nil {
		if dbComponents != nil {
			dbComponents.Close()
		}
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	a := &App{
		Services: serviceComponents,
		Database: dbComponents,
	}
	if dbComponents != nil {
		a.stopLogStore = InitializeRequestLogStore(dbComponents.LoggingService)
	} else {
		a.stopLogStore = InitializeRequestLogStore(nil)
	}

	routerComponents := InitializeRouter(serviceComponents, dbComponents, cfg)
	a.Router = http.NewRouter(routerComponents.Handlers, routerComponents.HealthHandler, routerComponents.Config)

	return a, nil
}

// Close flushes queued request logs and releases caches and the database.
func (a *App) Close() {
	a.stopLogStore()
	a.Services.Stop()
	if a.Database != nil {
		a.Database.Close()
	}
}
