package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	accessDomain "github.com/davicafu/orgref/internal/access/domain"
	accessDB "github.com/davicafu/orgref/internal/access/infra/outbound/db"
	accessHTTP "github.com/davicafu/orgref/internal/access/infra/inbound/http"
	auditApp "github.com/davicafu/orgref/internal/audit/application"
	auditDomain "github.com/davicafu/orgref/internal/audit/domain"
	auditEvents "github.com/davicafu/orgref/internal/audit/infra/inbound/events"
	auditHTTP "github.com/davicafu/orgref/internal/audit/infra/inbound/http"
	auditClickHouse "github.com/davicafu/orgref/internal/audit/infra/outbound/analytics/clickhouse"
	auditMemory "github.com/davicafu/orgref/internal/audit/infra/outbound/db/memory"
	auditMongo "github.com/davicafu/orgref/internal/audit/infra/outbound/db/mongodb"
	"github.com/davicafu/orgref/internal/config"
	geoDomain "github.com/davicafu/orgref/internal/geo/domain"
	geoDB "github.com/davicafu/orgref/internal/geo/infra/outbound/db"
	geoHTTP "github.com/davicafu/orgref/internal/geo/infra/inbound/http"
	orgDomain "github.com/davicafu/orgref/internal/org/domain"
	orgDB "github.com/davicafu/orgref/internal/org/infra/outbound/db"
	orgHTTP "github.com/davicafu/orgref/internal/org/infra/inbound/http"
	refApp "github.com/davicafu/orgref/internal/referential/application"
	refDomain "github.com/davicafu/orgref/internal/referential/domain"
	refDB "github.com/davicafu/orgref/internal/referential/infra/outbound/db"
	refHTTP "github.com/davicafu/orgref/internal/referential/infra/inbound/http"
	"github.com/davicafu/orgref/internal/shared/application"
	sharedEvents "github.com/davicafu/orgref/internal/shared/events"
	infraEvents "github.com/davicafu/orgref/internal/shared/infra/events"
	sharedHTTP "github.com/davicafu/orgref/internal/shared/infra/inbound/http"
	sharedBus "github.com/davicafu/orgref/internal/shared/infra/platform/bus"
	sharedCache "github.com/davicafu/orgref/internal/shared/infra/platform/cache"
	"github.com/davicafu/orgref/internal/shared/infra/platform/metrics"
	"github.com/davicafu/orgref/internal/shared/infra/relayer"
	"github.com/davicafu/orgref/pkg/logger"
)

// ---------------- Main ----------------
func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.LogLevel)
	log := logger.Logger()
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ---------------- DB ----------------
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to open storage", zap.Error(err))
	}
	defer store.Close()

	// ---------------- Cache ----------------
	var cache sharedCache.Cache
	if rdb, err := sharedCache.NewRedisClient(ctx, cfg.RedisAddr); err != nil {
		log.Warn("⚠️ Redis no disponible, cache en memoria", zap.Error(err))
		mem := sharedCache.NewInMemoryCache(cfg.CacheTTL, 3*cfg.CacheTTL)
		defer mem.Stop()
		cache = mem
	} else {
		defer rdb.Close()
		cache = sharedCache.NewRedisCache(rdb, "orgref:", cfg.CacheTTL)
		log.Info("✅ Redis conectado, cache habilitado")
	}

	// ---------------- Metrics ----------------
	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New("orgref")
	}

	// --------------- Servicios --------------
	countries := application.NewCatalogService("countries",
		newRepo(store, geoDB.CountryTable, geoDomain.CountryFields, (*geoDomain.Country).Clone),
		geoDomain.CountryFields, geoDomain.CountryDefaultSort, m, log)
	cities := application.NewCatalogService("cities",
		newRepo(store, geoDB.CityTable, geoDomain.CityFields, (*geoDomain.City).Clone),
		geoDomain.CityFields, geoDomain.CityDefaultSort, m, log)
	timezones := application.NewCatalogService("timezones",
		newRepo(store, geoDB.TimezoneTable, geoDomain.TimezoneFields, (*geoDomain.Timezone).Clone),
		geoDomain.TimezoneFields, geoDomain.TimezoneDefaultSort, m, log)
	teams := application.NewCatalogService("teams",
		newRepo(store, orgDB.TeamTable, orgDomain.TeamFields, (*orgDomain.Team).Clone),
		orgDomain.TeamFields, orgDomain.TeamDefaultSort, m, log)
	roles := application.NewCatalogService("roles",
		newRepo(store, accessDB.RoleTable, accessDomain.RoleFields, (*accessDomain.Role).Clone),
		accessDomain.RoleFields, accessDomain.RoleDefaultSort, m, log)
	users := application.NewCatalogService("users",
		newRepo(store, accessDB.UserTable, accessDomain.UserFields, (*accessDomain.User).Clone),
		accessDomain.UserFields, accessDomain.UserDefaultSort, m, log)
	referentials := application.NewCatalogService("referentials",
		newRepo(store, refDB.ReferentialTable, refDomain.ReferentialFields, (*refDomain.Referential).Clone),
		refDomain.ReferentialFields, refDomain.ReferentialDefaultSort, m, log)

	denormalizer := refApp.NewDenormalizer(referentials.FindAllByID, cache, int(cfg.CacheTTL.Seconds()), log)
	referentials.OnMutated(denormalizer.Invalidate)

	auditService := auditApp.NewAuditService(openAuditRepo(ctx, cfg, log), openAuditAnalytics(ctx, cfg, log), log)
	auditConsumer := auditEvents.NewCatalogConsumer(auditService, log)

	// ---------------- Events ---------------
	var publisher sharedBus.EventBus
	if cfg.UseKafka {
		log.Info("🚀 Usando Kafka como bus de eventos", zap.Strings("brokers", cfg.KafkaBrokers))

		kafkaPublisher := infraEvents.NewKafkaPublisher(infraEvents.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic), log)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher

		reader := infraEvents.NewKafkaReader(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.KafkaGroupID)
		infraEvents.NewConsumerAdapter(reader, auditConsumer, log).Start(ctx)
	} else {
		log.Info("⚡️ Usando bus de eventos en memoria (canales de Go)")

		bus := infraEvents.NewInMemoryEventBus(cfg.KafkaTopic)
		publisher = bus
		infraEvents.ConsumeChan(ctx, bus.Subscribe(100), auditConsumer, log)
	}

	// ------------ Outbox Worker ------------
	worker := relayer.NewOutboxWorker(store.outbox(), publisher, sharedEvents.NewCatalogEventRegistry(), cfg.OutboxPeriod, cfg.OutboxLimit, log)
	go worker.Start(ctx)

	// ---------------- HTTP ----------------
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), sharedHTTP.RequestID(), sharedHTTP.Logger(log), sharedHTTP.CORS(sharedHTTP.ParseOrigins(cfg.CORSAllowedOrigins)))

	geoHTTP.RegisterGeoRoutes(router, geoHTTP.Services{Countries: countries, Cities: cities, Timezones: timezones}, log)
	orgHTTP.RegisterTeamRoutes(router, teams, log)
	accessHTTP.RegisterAccessRoutes(router, accessHTTP.Services{Roles: roles, Users: users}, log)
	refHTTP.RegisterReferentialRoutes(router, referentials, denormalizer, log)
	auditHTTP.RegisterAuditRoutes(router, auditHTTP.NewAuditHandler(auditService, log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if m != nil {
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}

	srv := &http.Server{Addr: ":" + cfg.HTTPPort, Handler: router}
	go func() {
		log.Info("🚀 Server running", zap.String("url", "http://localhost:"+cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("🛑 Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP shutdown failed", zap.Error(err))
	}
}

// openAuditRepo usa Mongo si está configurado; si no, o si no responde, memoria.
func openAuditRepo(ctx context.Context, cfg *config.Config, log *zap.Logger) auditDomain.AuditRepository {
	if cfg.MongoURI == "" {
		return auditMemory.NewAuditStore()
	}
	client, err := auditMongo.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Warn("⚠️ MongoDB no disponible, auditoría en memoria", zap.Error(err))
		return auditMemory.NewAuditStore()
	}
	repo, err := auditMongo.NewAuditRepoMongoDB(ctx, client, cfg.MongoDB)
	if err != nil {
		log.Warn("⚠️ MongoDB no disponible, auditoría en memoria", zap.Error(err))
		_ = client.Disconnect(ctx)
		return auditMemory.NewAuditStore()
	}
	log.Info("✅ MongoDB conectado, auditoría persistente")
	return repo
}

// openAuditAnalytics devuelve nil sin ClickHouse; /audit/trend responde entonces 503.
func openAuditAnalytics(ctx context.Context, cfg *config.Config, log *zap.Logger) auditDomain.AuditAnalyticsRepository {
	if cfg.ClickHouseAddr == "" {
		return nil
	}
	db, err := auditClickHouse.OpenDB(cfg.ClickHouseAddr, cfg.ClickHouseDB)
	if err != nil {
		log.Warn("⚠️ ClickHouse no disponible, sin analítica", zap.Error(err))
		return nil
	}
	repo := auditClickHouse.NewAuditAnalyticsRepo(db)
	if err := repo.InitSchema(ctx); err != nil {
		log.Warn("⚠️ No se pudo crear audit_log en ClickHouse", zap.Error(err))
		return nil
	}
	log.Info("✅ ClickHouse conectado, analítica habilitada")
	return repo
}
