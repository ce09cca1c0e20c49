package app

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/adapter"
	"github.com/niksmo/storefront/internal/adapter/catalog"
	"github.com/niksmo/storefront/internal/adapter/httphandler"
	"github.com/niksmo/storefront/internal/adapter/kafka"
	"github.com/niksmo/storefront/internal/adapter/storage"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/shopspring/decimal"
	"github.com/twmb/franz-go/pkg/sr"
)

type kvStore interface {
	port.KeyValueStore
	Close()
}

type eventsProducer interface {
	port.EventsProducer
	Close()
}

type serdes struct {
	cartEvent   schema.Serde
	searchEvent schema.Serde
}

type coreService struct {
	cart     *service.CartStore
	auth     *service.Auth
	catalog  service.Catalog
	checkout service.Checkout
	admin    *service.Admin
	relay    *service.EventRelay
}

type App struct {
	ctx        context.Context
	cfg        config.Config
	tlsCfg     *tls.Config
	kv         kvStore
	serdes     serdes
	producer   eventsProducer
	service    coreService
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initTLS()
	app.initStorage()
	app.initSerdes()
	app.initOutboundAdapters()
	app.initCoreService()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initTLS() {
	const op = "App.initTLS"

	files := app.cfg.Broker.TLS
	if !app.cfg.Broker.Enabled() || !files.Enabled() {
		return
	}

	tlsCfg, err := adapter.MakeTLSConfig(files.CA, files.Cert, files.Key)
	if err != nil {
		app.fallDown(op, err)
	}
	app.tlsCfg = tlsCfg
}

func (app *App) initStorage() {
	const op = "App.initStorage"

	switch driver := app.cfg.Storage.Driver; driver {
	case storage.DriverMemory:
		app.kv = storage.NewMemoryKV()
	case storage.DriverLevelDB:
		kv, err := storage.OpenLevelDBKV(app.ctx, app.cfg.Storage.LevelDBPath)
		if err != nil {
			app.fallDown(op, err)
		}
		app.kv = kv
	case storage.DriverPostgres:
		db, err := storage.NewSQLDB(app.ctx, app.cfg.Storage.PostgresDSN)
		if err != nil {
			app.fallDown(op, err)
		}
		app.kv = storage.NewSnapshotsRepository(db)
	default:
		app.fallDown(op, fmt.Errorf("%w: %q", storage.ErrUnknownDriver, driver))
	}
}

func (app *App) initSerdes() {
	const op = "App.initSerdes"

	if !app.cfg.Broker.Enabled() {
		return
	}

	srOpts := []sr.ClientOpt{sr.URLs(app.cfg.Broker.SchemaRegistryURLs...)}
	if app.tlsCfg != nil {
		srOpts = append(srOpts, sr.DialTLSConfig(app.tlsCfg))
	}
	srClient, err := sr.NewClient(srOpts...)
	if err != nil {
		app.fallDown(op, err)
	}

	registry := schema.NewSchemaRegistry(srClient)
	topics := app.cfg.Broker.Topics

	cartEventSerde, err := schema.NewSerdeCartEventV1(
		app.ctx,
		schema.SubjectOpt(topics.CartEvents+"-value"),
		schema.SchemaIdentifierOpt(registry),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	searchEventSerde, err := schema.NewSerdeSearchEventV1(
		app.ctx,
		schema.SubjectOpt(topics.SearchEvents+"-value"),
		schema.SchemaIdentifierOpt(registry),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.serdes.cartEvent = cartEventSerde
	app.serdes.searchEvent = searchEventSerde
}

func (app *App) initOutboundAdapters() {
	const op = "App.initOutboundAdapters"

	if !app.cfg.Broker.Enabled() {
		slog.Warn("no seed brokers configured, events are discarded", "op", op)
		app.producer = kafka.NopEventsProducer{}
		return
	}

	topics := app.cfg.Broker.Topics
	producer, err := kafka.NewEventsProducer(
		kafka.ProducerClientOpt(app.ctx, app.cfg.Broker.SeedBrokers, app.tlsCfg),
		kafka.CartEventsOpt(topics.CartEvents, app.serdes.cartEvent),
		kafka.SearchEventsOpt(topics.SearchEvents, app.serdes.searchEvent),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.producer = producer
}

func (app *App) initCoreService() {
	cart := service.NewCartStore(app.ctx, app.kv)
	auth := service.NewAuth(app.ctx, app.kv, app.cfg.Mock.AuthDelay)
	relay := service.NewEventRelay(
		app.producer, cart, auth,
		service.RelayQueueSizeOpt(app.cfg.Broker.RelayQueueSize),
	)

	cat := service.NewCatalog(catalog.Products(), catalog.Categories(), relay)

	app.service = coreService{
		cart:     cart,
		auth:     auth,
		catalog:  cat,
		checkout: service.NewCheckout(auth, cart, app.cfg.Mock.CheckoutDelay),
		admin: service.NewAdmin(
			auth, cat, catalog.Orders(), app.cfg.Mock.SaveDelay,
		),
		relay: relay,
	}
}

func (app *App) initInboundAdapters() {
	s := app.service
	maxPrice := decimal.NewFromFloat(app.cfg.Catalog.DefaultPriceMax)

	mux := http.NewServeMux()
	httphandler.RegisterProducts(mux, s.catalog, s.catalog, s.auth, maxPrice)
	httphandler.RegisterCart(mux, s.cart, s.catalog)
	httphandler.RegisterAuth(mux, s.auth)
	httphandler.RegisterCheckout(mux, s.checkout)
	httphandler.RegisterAdmin(mux, s.admin, s.admin)

	handler := httphandler.LogRequests(httphandler.AllowJSON(mux))
	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.service.relay.Run(app.ctx)
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.service.relay.Close()
	app.producer.Close()
	app.kv.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
