package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/trackrcommerce/trackr-api/internal/api/handler"
	"github.com/trackrcommerce/trackr-api/internal/api/handler/router"
	"github.com/trackrcommerce/trackr-api/internal/config"
	"github.com/trackrcommerce/trackr-api/internal/usecases/authenticating"
	"github.com/trackrcommerce/trackr-api/internal/usecases/branding"
	"github.com/trackrcommerce/trackr-api/internal/usecases/classifying"
	"github.com/trackrcommerce/trackr-api/internal/usecases/converting"
	"github.com/trackrcommerce/trackr-api/internal/usecases/couponing"
	"github.com/trackrcommerce/trackr-api/internal/usecases/reporting"
	"github.com/trackrcommerce/trackr-api/pkg/apiErrors"
	"github.com/trackrcommerce/trackr-api/pkg/metrics"
	"github.com/trackrcommerce/trackr-api/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

// Services reúne as dependências expostas pela API
type Services struct {
	Authenticator   authenticating.Authenticator
	Brands          branding.BrandService
	Reports         reporting.Reporter
	Coupons         couponing.CouponService
	Conversions     converting.ConversionService
	Classifications classifying.ClassificationService
	CronJobs        handler.CronJobServices
}

type Server struct {
	httpServer *http.Server
}

func New(cfg *config.Config, services Services, appMetrics *metrics.Metrics) *Server {
	rt := router.New(
		router.WithRouteWrapper(func(route router.Route, next http.Handler) http.Handler {
			return middleware.Metrics(appMetrics, route.Path)(next)
		}),
		router.WithNotFound(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Rota não encontrada", nil)
		})),
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Metrics(appMetrics.Handler())...),
		router.WithRoutes(handler.Authentication(services.Authenticator)...),
		router.WithRoutes(handler.User(services.Authenticator)...),
		router.WithRoutes(handler.Brands(services.Brands)...),
		router.WithRoutes(handler.Reports(services.Reports, services.Brands)...),
		router.WithRoutes(handler.Coupons(services.Coupons, services.Classifications, services.Brands)...),
		router.WithRoutes(handler.Conversions(services.Conversions, services.Brands)...),
		router.WithRoutes(handler.Classifications(services.Classifications, services.Brands)...),
		router.WithRoutes(handler.CronJobs(services.CronJobs)...),
	)

	chain := alice.New(
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(cfg.App.AllowedOrigins),
		middleware.AuthMiddleware(services.Authenticator),
	)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:           chain.Then(rt),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}
}

// Handler expõe a cadeia completa para testes
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithField("address", s.httpServer.Addr).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithField("timeout", shutdownTimeout.String()).Info("Iniciando desligamento do servidor")

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}
