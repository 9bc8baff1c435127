package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/Tarun1516/yaakai/domain"
	"github.com/Tarun1516/yaakai/internal/catalog"
	"github.com/Tarun1516/yaakai/internal/config"
	httpx "github.com/Tarun1516/yaakai/internal/http"
	"github.com/Tarun1516/yaakai/internal/http/handlers"
	"github.com/Tarun1516/yaakai/internal/http/middleware"
	"github.com/Tarun1516/yaakai/internal/infrastructure/remote"
	"github.com/Tarun1516/yaakai/internal/logger"
	"github.com/Tarun1516/yaakai/internal/metrics"
	"github.com/Tarun1516/yaakai/internal/services"
)

func Run(cfg *config.Config) error {
	log := logger.SetupDefault(os.Stdout)

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	client := remote.NewClient(remote.ClientConfig{
		Endpoint:  cfg.RemoteEndpoint,
		ProjectID: cfg.ProjectID,
		Timeout:   cfg.RemoteTimeout,
		RateLimit: rate.Limit(cfg.RateLimit),
		RateBurst: cfg.RateBurst,
		Metrics:   collector,
	})
	accounts := remote.NewAccountAPI(client)
	docs := remote.NewDatabaseAPI(client, cfg.DatabaseID)

	sessions := services.NewSessionStore(accounts, docs, cfg.UsersCollectionID, log)

	// The add-to-cart connectivity alert has no modal dialog here; it
	// surfaces through the log and the alert counter.
	alert := func(message string) {
		collector.RecordCartAlert()
		log.Error("cart alert", slog.String("message", message))
	}
	cart := services.NewCartStore(docs, sessions.Current, cfg.CartCollectionID, alert, log)

	// The composition root owns the store wiring: the cart store gets
	// the identity accessor above, and identity changes drive its
	// refresh here, so neither store imports the other.
	unsubscribe := sessions.Subscribe(func(ev domain.IdentityEvent) {
		cart.Refresh(context.Background())
	})
	defer unsubscribe()

	// Resolve any pre-existing session before serving; consumers may
	// not render protected state until this completes.
	startCtx, cancel := context.WithTimeout(context.Background(), cfg.RemoteTimeout)
	sessions.Initialize(startCtx)
	cancel()

	gin.SetMode(cfg.GinMode)
	authH := handlers.NewAuthHandlers(sessions)
	cat := catalog.New()
	cartH := handlers.NewCartHandlers(cart, cat)
	catalogH := handlers.NewCatalogHandlers(cat)
	gate := middleware.RequireSession(sessions)

	r := httpx.BuildRouter(authH, cartH, catalogH, gate, log, collector.Handler())

	addr := ":" + cfg.Port
	log.Info("listening", slog.String("addr", addr))
	return http.ListenAndServe(addr, r)
}
