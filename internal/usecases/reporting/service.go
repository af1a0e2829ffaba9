// Package reporting calcula os cards do dashboard de uma marca: série diária,
// rankings, pedidos pendentes e métricas gerais.
package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/trackrcommerce/trackr-api/infrastructure/cache"
	"github.com/trackrcommerce/trackr-api/infrastructure/repository"
	"github.com/trackrcommerce/trackr-api/internal/config"
	"github.com/trackrcommerce/trackr-api/internal/domain"
	"github.com/trackrcommerce/trackr-api/pkg/log"
)

// Nomes dos cards, usados em chave de cache, métricas e logs
const (
	WidgetMetrics            = "metrics"
	WidgetDailyRevenue       = "daily_revenue"
	WidgetTopCoupons         = "top_coupons"
	WidgetTopClassifications = "top_classifications"
	WidgetPendingOrders      = "pending_orders"
	WidgetTopUTMSources      = "top_utm_sources"
)

type Reporter interface {
	GetDailyRevenue(ctx context.Context, brandID string, dateRange domain.DateRange) ([]*domain.DailyRevenue, error)
	GetTopCoupons(ctx context.Context, brandID string, dateRange domain.DateRange) ([]*domain.CouponRevenue, error)
	GetTopClassifications(ctx context.Context, brandID string, dateRange domain.DateRange) ([]*domain.ClassificationRevenue, error)
	GetPendingOrders(ctx context.Context, brandID string, dateRange domain.DateRange) (*domain.PendingOrders, error)
	GetBrandMetrics(ctx context.Context, brandID string, dateRange domain.DateRange) (*domain.BrandMetrics, error)
	GetTopUTMSources(ctx context.Context, brandID string, dateRange domain.DateRange) ([]*domain.UTMSourceRevenue, error)
	GetOverview(ctx context.Context, brandID string, dateRange domain.DateRange) *domain.Overview
}

// WidgetObserver recebe a duração e o resultado de cada card
type WidgetObserver interface {
	ObserveWidget(widget string, duration time.Duration, err error)
	ObserveCache(widget string, hit bool)
}

type noopObserver struct{}

func (noopObserver) ObserveWidget(string, time.Duration, error) {}
func (noopObserver) ObserveCache(string, bool)                  {}

type Service struct {
	cfg                      config.Dashboard
	conversionRepository     repository.ConversionRepository
	couponRepository         repository.CouponRepository
	classificationRepository repository.ClassificationRepository
	influencerRepository     repository.InfluencerRepository
	cache                    cache.Cache
	observer                 WidgetObserver
}

func NewService(
	cfg config.Dashboard,
	conversionRepo repository.ConversionRepository,
	couponRepo repository.CouponRepository,
	classificationRepo repository.ClassificationRepository,
	influencerRepo repository.InfluencerRepository,
) *Service {
	return &Service{
		cfg:                      cfg,
		conversionRepository:     conversionRepo,
		couponRepository:         couponRepo,
		classificationRepository: classificationRepo,
		influencerRepository:     influencerRepo,
		observer:                 noopObserver{},
	}
}

// WithCache habilita o cache dos cards. Falhas do cache só geram log.
func (s *Service) WithCache(c cache.Cache) *Service {
	s.cache = c
	return s
}

func (s *Service) WithObserver(observer WidgetObserver) *Service {
	if observer != nil {
		s.observer = observer
	}
	return s
}

// load executa um card: valida a marca, consulta o cache, calcula e grava o resultado.
// Em erro devolve sempre o valor vazio informado.
func load[T any](
	ctx context.Context,
	s *Service,
	widget, brandID string,
	dateRange domain.DateRange,
	empty T,
	compute func(context.Context) (T, error),
) (T, error) {
	if brandID == "" {
		return empty, newReportError(ErrBrandIDRequired, brandID, widget)
	}

	logger := log.ForContext(ctx).WithFields(log.Fields{
		"brand_id": brandID,
		"widget":   widget,
	})

	key := cache.Key(brandID, widget, dateRange)
	if s.cache != nil {
		var cached T
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			logger.WithError(err).Warn("reporting: falha ao ler cache, consultando o banco")
		}
		s.observer.ObserveCache(widget, found)
		if found {
			return cached, nil
		}
	}

	startTime := time.Now()
	data, err := compute(ctx)
	s.observer.ObserveWidget(widget, time.Since(startTime), err)

	if err != nil {
		logger.WithError(err).Error("reporting: erro ao calcular card")
		return empty, newReportError(err, brandID, widget)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, data); err != nil {
			logger.WithError(err).Warn("reporting: falha ao gravar cache")
		}
	}

	return data, nil
}

// selectQualifying busca as conversões reais do período já restritas ao conjunto
// de status do card
func (s *Service) selectQualifying(
	ctx context.Context,
	brandID string,
	dateRange domain.DateRange,
	accepted domain.StatusSet,
) ([]*domain.Conversion, error) {
	onlyReal := true
	conversions, err := s.conversionRepository.SelectConversions(ctx, brandID, repository.ConversionFilter{
		Range:       &dateRange,
		Statuses:    accepted,
		OrderIsReal: &onlyReal,
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar conversões: %w", err)
	}

	return qualifying(conversions, accepted), nil
}

func (s *Service) GetDailyRevenue(ctx context.Context, brandID string, dateRange domain.DateRange) ([]*domain.DailyRevenue, error) {
	return load(ctx, s, WidgetDailyRevenue, brandID, dateRange, []*domain.DailyRevenue{},
		func(ctx context.Context) ([]*domain.DailyRevenue, error) {
			conversions, err := s.selectQualifying(ctx, brandID, dateRange, domain.RevenueStatusesDailySeries)
			if err != nil {
				return nil, err
			}
			return groupDaily(conversions), nil
		})
}

func (s *Service) GetTopCoupons(ctx context.Context, brandID string, dateRange domain.DateRange) ([]*domain.CouponRevenue, error) {
	return load(ctx, s, WidgetTopCoupons, brandID, dateRange, []*domain.CouponRevenue{},
		func(ctx context.Context) ([]*domain.CouponRevenue, error) {
			conversions, err := s.selectQualifying(ctx, brandID, dateRange, domain.RevenueStatusesTopLists)
			if err != nil {
				return nil, err
			}
			return rankCoupons(conversions, topCouponsLimit), nil
		})
}

func (s *Service) GetTopClassifications(ctx context.Context, brandID string, dateRange domain.DateRange) ([]*domain.ClassificationRevenue, error) {
	return load(ctx, s, WidgetTopClassifications, brandID, dateRange, []*domain.ClassificationRevenue{},
		func(ctx context.Context) ([]*domain.ClassificationRevenue, error) {
			conversions, err := s.selectQualifying(ctx, brandID, dateRange, domain.RevenueStatusesTopLists)
			if err != nil {
				return nil, err
			}

			isActive := true
			classifications, err := s.classificationRepository.SelectClassifications(ctx, brandID, &isActive)
			if err != nil {
				return nil, fmt.Errorf("erro ao buscar classificações: %w", err)
			}

			active := make(map[string]*domain.CouponClassification, len(classifications))
			for _, classification := range classifications {
				active[classification.ID] = classification
			}

			return rankClassifications(conversions, active, topClassificationsLimit), nil
		})
}

func (s *Service) GetPendingOrders(ctx context.Context, brandID string, dateRange domain.DateRange) (*domain.PendingOrders, error) {
	return load(ctx, s, WidgetPendingOrders, brandID, dateRange, domain.EmptyPendingOrders(),
		func(ctx context.Context) (*domain.PendingOrders, error) {
			conversions, err := s.selectQualifying(ctx, brandID, dateRange, domain.PendingStatuses)
			if err != nil {
				return nil, err
			}
			return rollupPending(conversions), nil
		})
}

// GetBrandMetrics calcula as métricas gerais da marca. As contagens de cupons e
// influenciadores consideram todo o histórico, a não ser que
// DASHBOARD_SUMMARY_COUNTS_BY_RANGE esteja ligado.
func (s *Service) GetBrandMetrics(ctx context.Context, brandID string, dateRange domain.DateRange) (*domain.BrandMetrics, error) {
	return load(ctx, s, WidgetMetrics, brandID, dateRange, domain.EmptyBrandMetrics(brandID),
		func(ctx context.Context) (*domain.BrandMetrics, error) {
			conversions, err := s.selectQualifying(ctx, brandID, dateRange, domain.RevenueStatusesSummary)
			if err != nil {
				return nil, err
			}

			var createdRange *domain.DateRange
			if s.cfg.SummaryCountsByRange {
				createdRange = &dateRange
			}

			coupons, err := s.couponRepository.SelectCoupons(ctx, brandID, repository.CouponFilter{CreatedRange: createdRange})
			if err != nil {
				return nil, fmt.Errorf("erro ao buscar cupons: %w", err)
			}

			influencers, err := s.influencerRepository.SelectInfluencers(ctx, brandID, createdRange)
			if err != nil {
				return nil, fmt.Errorf("erro ao buscar influenciadores: %w", err)
			}

			return summarize(brandID, conversions, coupons, influencers), nil
		})
}

func (s *Service) GetTopUTMSources(ctx context.Context, brandID string, dateRange domain.DateRange) ([]*domain.UTMSourceRevenue, error) {
	return load(ctx, s, WidgetTopUTMSources, brandID, dateRange, []*domain.UTMSourceRevenue{},
		func(ctx context.Context) ([]*domain.UTMSourceRevenue, error) {
			conversions, err := s.selectQualifying(ctx, brandID, dateRange, domain.RevenueStatusesTopLists)
			if err != nil {
				return nil, err
			}
			return rankUTMSources(conversions, topUTMSourcesLimit), nil
		})
}
