package reporting

import (
	"context"
	"sync"

	"github.com/trackrcommerce/trackr-api/internal/domain"
)

const defaultMaxConcurrentQueries = 5

// widgetTask preenche um card. Com cancelled != nil o card fica vazio com o erro.
type widgetTask func(cancelled error)

func runWidget[T any](widget *domain.Widget[T], name, brandID string, fetch func() (T, error)) widgetTask {
	return func(cancelled error) {
		if cancelled != nil {
			widget.Err = newReportError(cancelled, brandID, name)
			return
		}
		widget.Data, widget.Err = fetch()
	}
}

// GetOverview calcula todos os cards em paralelo. Cada card carrega o próprio erro,
// então a falha de um não impede os outros de serem exibidos.
func (s *Service) GetOverview(ctx context.Context, brandID string, dateRange domain.DateRange) *domain.Overview {
	overview := domain.EmptyOverview(brandID, nil)

	tasks := []widgetTask{
		runWidget(&overview.Metrics, WidgetMetrics, brandID, func() (*domain.BrandMetrics, error) {
			return s.GetBrandMetrics(ctx, brandID, dateRange)
		}),
		runWidget(&overview.DailyRevenue, WidgetDailyRevenue, brandID, func() ([]*domain.DailyRevenue, error) {
			return s.GetDailyRevenue(ctx, brandID, dateRange)
		}),
		runWidget(&overview.TopCoupons, WidgetTopCoupons, brandID, func() ([]*domain.CouponRevenue, error) {
			return s.GetTopCoupons(ctx, brandID, dateRange)
		}),
		runWidget(&overview.TopClassifications, WidgetTopClassifications, brandID, func() ([]*domain.ClassificationRevenue, error) {
			return s.GetTopClassifications(ctx, brandID, dateRange)
		}),
		runWidget(&overview.PendingOrders, WidgetPendingOrders, brandID, func() (*domain.PendingOrders, error) {
			return s.GetPendingOrders(ctx, brandID, dateRange)
		}),
		runWidget(&overview.TopUTMSources, WidgetTopUTMSources, brandID, func() ([]*domain.UTMSourceRevenue, error) {
			return s.GetTopUTMSources(ctx, brandID, dateRange)
		}),
	}

	maxConcurrent := s.cfg.MaxConcurrentQueries
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrentQueries
	}

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, maxConcurrent)

	// Cada tarefa escreve só no próprio campo do overview
	for _, task := range tasks {
		wg.Add(1)
		go func(run widgetTask) {
			defer wg.Done()

			select {
			case semaphore <- struct{}{}:
			case <-ctx.Done():
				run(ctx.Err())
				return
			}
			defer func() { <-semaphore }()

			// O select escolhe ao acaso quando os dois casos estão prontos
			if err := ctx.Err(); err != nil {
				run(err)
				return
			}

			run(nil)
		}(task)
	}

	wg.Wait()

	return overview
}
