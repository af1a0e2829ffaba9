package main

import (
	"context"
	"errors"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/trackrcommerce/trackr-api/infrastructure/cache"
	"github.com/trackrcommerce/trackr-api/infrastructure/database/postgres"
	"github.com/trackrcommerce/trackr-api/infrastructure/integrator/nuvemshop"
	"github.com/trackrcommerce/trackr-api/infrastructure/integrator/nuvemshop/nuvemshopclient"
	"github.com/trackrcommerce/trackr-api/infrastructure/repository"
	"github.com/trackrcommerce/trackr-api/internal/api"
	"github.com/trackrcommerce/trackr-api/internal/api/handler"
	"github.com/trackrcommerce/trackr-api/internal/config"
	"github.com/trackrcommerce/trackr-api/internal/scheduler"
	"github.com/trackrcommerce/trackr-api/internal/usecases/authenticating"
	"github.com/trackrcommerce/trackr-api/internal/usecases/branding"
	"github.com/trackrcommerce/trackr-api/internal/usecases/classifying"
	"github.com/trackrcommerce/trackr-api/internal/usecases/converting"
	"github.com/trackrcommerce/trackr-api/internal/usecases/couponing"
	"github.com/trackrcommerce/trackr-api/internal/usecases/reporting"
	"github.com/trackrcommerce/trackr-api/pkg/metrics"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	redisCache, err := cache.NewRedisCache(ctx, cfg.Redis)
	if err != nil {
		logrus.WithError(err).Warn("Cache do dashboard desligado")
	}

	appMetrics := metrics.New(prometheus.NewRegistry())

	userRepo := repository.NewUserRepository(pgConn)
	brandRepo := repository.NewBrandRepository(pgConn)
	couponRepo := repository.NewCouponRepository(pgConn)
	conversionRepo := repository.NewConversionRepository(pgConn)
	classificationRepo := repository.NewClassificationRepository(pgConn)
	influencerRepo := repository.NewInfluencerRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)
	brandService := branding.NewService(brandRepo)
	classificationService := classifying.NewService(classificationRepo, couponRepo)
	couponService := couponing.NewService(cfg.Dashboard, couponRepo, conversionRepo, classificationRepo, influencerRepo)
	conversionService := converting.NewService(cfg.Dashboard, conversionRepo, couponRepo, influencerRepo)

	reportService := reporting.NewService(cfg.Dashboard, conversionRepo, couponRepo, classificationRepo, influencerRepo).
		WithObserver(appMetrics)
	if redisCache != nil {
		reportService = reportService.WithCache(redisCache)
	}

	nuvemshopIntegrator := nuvemshop.New(cfg, nuvemshopclient.NewClient(cfg.Nuvemshop))

	orderSyncService := scheduler.NewOrderSyncService(
		brandRepo,
		couponRepo,
		conversionService,
		nuvemshopIntegrator,
		cfg,
	).WithObserver(appMetrics)

	if err := orderSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização de pedidos")
	}

	server := api.New(cfg, api.Services{
		Authenticator:   authenticator,
		Brands:          brandService,
		Reports:         reportService,
		Coupons:         couponService,
		Conversions:     conversionService,
		Classifications: classificationService,
		CronJobs:        handler.CronJobServices{OrderSyncService: orderSyncService},
	}, appMetrics)

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	os.Chdir(path.Dir(file))

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn abre o banco. Sem DATABASE_URL a API sobe mesmo assim e os
// repositórios respondem "banco de dados não configurado".
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if errors.Is(err, postgres.ErrNotConfigured) {
		logrus.Warn("DATABASE_URL não definido, API sem banco de dados")
		return nil
	}
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
