package reporting

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trackrcommerce/trackr-api/infrastructure/database/postgres"
	"github.com/trackrcommerce/trackr-api/infrastructure/repository"
	"github.com/trackrcommerce/trackr-api/infrastructure/repository/mocks"
	"github.com/trackrcommerce/trackr-api/internal/config"
	"github.com/trackrcommerce/trackr-api/internal/domain"
	"github.com/trackrcommerce/trackr-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

type serviceMocks struct {
	conversions     *mocks.MockConversionRepository
	coupons         *mocks.MockCouponRepository
	classifications *mocks.MockClassificationRepository
	influencers     *mocks.MockInfluencerRepository
}

func newTestService(t *testing.T, cfg config.Dashboard) (*Service, serviceMocks) {
	ctrl := gomock.NewController(t)
	m := serviceMocks{
		conversions:     mocks.NewMockConversionRepository(ctrl),
		coupons:         mocks.NewMockCouponRepository(ctrl),
		classifications: mocks.NewMockClassificationRepository(ctrl),
		influencers:     mocks.NewMockInfluencerRepository(ctrl),
	}
	return NewService(cfg, m.conversions, m.coupons, m.classifications, m.influencers), m
}

func january(t *testing.T) domain.DateRange {
	dateRange, err := domain.NewDateRange(
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return dateRange
}

// memoryCache guarda os valores serializados, como o Redis faria
type memoryCache struct {
	values map[string][]byte
}

func (c *memoryCache) Get(_ context.Context, key string, dest any) (bool, error) {
	raw, ok := c.values[key]
	if !ok {
		return false, nil
	}
	return true, jsoniter.Unmarshal(raw, dest)
}

func (c *memoryCache) Set(_ context.Context, key string, value any) error {
	raw, err := jsoniter.Marshal(value)
	c.values[key] = raw
	return err
}

func TestService_GetBrandMetrics(t *testing.T) {
	t.Run("considera apenas pedidos reais com status de receita", func(t *testing.T) {
		svc, m := newTestService(t, config.Dashboard{})
		dateRange := january(t)

		// O banco devolve tudo; o filtro em memória precisa descartar o pendente e o de teste
		m.conversions.EXPECT().
			SelectConversions(gomock.Any(), "brand-1", gomock.Any()).
			Return([]*domain.Conversion{
				newConversion(100, domain.StatusPaid, true),
				newConversion(50, domain.StatusPending, true),
				newConversion(30, domain.StatusPaid, false),
			}, nil)
		m.coupons.EXPECT().
			SelectCoupons(gomock.Any(), "brand-1", repository.CouponFilter{}).
			Return([]*domain.Coupon{}, nil)
		m.influencers.EXPECT().
			SelectInfluencers(gomock.Any(), "brand-1", nil).
			Return([]*domain.Influencer{}, nil)

		metrics, err := svc.GetBrandMetrics(context.Background(), "brand-1", dateRange)

		require.NoError(t, err)
		assert.Equal(t, 100.0, metrics.TotalRevenue)
		assert.Equal(t, 1, metrics.TotalOrders)
	})

	t.Run("contagens filtradas pelo período quando configurado", func(t *testing.T) {
		svc, m := newTestService(t, config.Dashboard{SummaryCountsByRange: true})
		dateRange := january(t)

		m.conversions.EXPECT().SelectConversions(gomock.Any(), "brand-1", gomock.Any()).Return(nil, nil)
		m.coupons.EXPECT().
			SelectCoupons(gomock.Any(), "brand-1", repository.CouponFilter{CreatedRange: &dateRange}).
			Return([]*domain.Coupon{{ID: "c1", IsActive: true}}, nil)
		m.influencers.EXPECT().
			SelectInfluencers(gomock.Any(), "brand-1", &dateRange).
			Return([]*domain.Influencer{{ID: "i1"}}, nil)

		metrics, err := svc.GetBrandMetrics(context.Background(), "brand-1", dateRange)

		require.NoError(t, err)
		assert.Equal(t, 1, metrics.TotalCoupons)
		assert.Equal(t, 1, metrics.TotalInfluencers)
		assert.Equal(t, 0.0, metrics.CommissionRate)
	})
}

func TestService_FiltroEnviadoAoBanco(t *testing.T) {
	svc, m := newTestService(t, config.Dashboard{})
	dateRange := january(t)

	m.conversions.EXPECT().
		SelectConversions(gomock.Any(), "brand-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, filter repository.ConversionFilter) ([]*domain.Conversion, error) {
			assert.Equal(t, domain.RevenueStatusesTopLists, filter.Statuses)
			require.NotNil(t, filter.OrderIsReal)
			assert.True(t, *filter.OrderIsReal)
			require.NotNil(t, filter.Range)
			assert.Equal(t, "2024-01-01", filter.Range.StartDate())
			assert.Equal(t, "2024-01-31", filter.Range.EndDate())
			return []*domain.Conversion{}, nil
		})

	coupons, err := svc.GetTopCoupons(context.Background(), "brand-1", dateRange)

	require.NoError(t, err)
	assert.NotNil(t, coupons)
	assert.Empty(t, coupons)
}

func TestService_ErrosDevolvemValorVazio(t *testing.T) {
	dateRange := january(t)
	storeErr := fmt.Errorf("erro ao executar a query: %w", postgres.ErrNotConfigured)

	t.Run("banco não configurado", func(t *testing.T) {
		svc, m := newTestService(t, config.Dashboard{})
		m.conversions.EXPECT().SelectConversions(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, storeErr)

		series, err := svc.GetDailyRevenue(context.Background(), "brand-1", dateRange)

		require.Error(t, err)
		assert.NotNil(t, series)
		assert.Empty(t, series)
		assert.True(t, errors.Is(err, ErrStoreNotConfigured))
		assert.Equal(t, apiErrors.ErrStoreNotConfigured, apiErrors.CodeOf(err))
		assert.Equal(t, "Banco de dados não está configurado", apiErrors.Localize(err))
	})

	t.Run("pedidos pendentes com struct zerada", func(t *testing.T) {
		svc, m := newTestService(t, config.Dashboard{})
		m.conversions.EXPECT().SelectConversions(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))

		pending, err := svc.GetPendingOrders(context.Background(), "brand-1", dateRange)

		require.Error(t, err)
		require.NotNil(t, pending)
		assert.Equal(t, 0.0, pending.Revenue)
		assert.NotNil(t, pending.Daily)
		assert.Equal(t, apiErrors.UnknownErrorMessage, apiErrors.Localize(err))
	})

	t.Run("marca obrigatória", func(t *testing.T) {
		svc, _ := newTestService(t, config.Dashboard{})

		metrics, err := svc.GetBrandMetrics(context.Background(), "", dateRange)

		require.Error(t, err)
		require.NotNil(t, metrics)
		assert.Equal(t, 0, metrics.TotalOrders)

		var reportErr *ReportError
		require.True(t, errors.As(err, &reportErr))
		assert.Equal(t, apiErrors.ErrMissingRequiredData, reportErr.Code)
	})
}

func TestService_GetOverview_FalhaIsolada(t *testing.T) {
	svc, m := newTestService(t, config.Dashboard{MaxConcurrentQueries: 2})
	dateRange := january(t)

	m.conversions.EXPECT().
		SelectConversions(gomock.Any(), "brand-1", gomock.Any()).
		Return([]*domain.Conversion{
			newConversion(100, domain.StatusPaid, true, withCoupon("c1", "A")),
			newConversion(20, domain.StatusPending, true),
		}, nil).
		AnyTimes()
	m.classifications.EXPECT().
		SelectClassifications(gomock.Any(), "brand-1", gomock.Any()).
		Return(nil, errors.New("falha de conexão"))
	m.coupons.EXPECT().SelectCoupons(gomock.Any(), "brand-1", gomock.Any()).Return([]*domain.Coupon{}, nil)
	m.influencers.EXPECT().SelectInfluencers(gomock.Any(), "brand-1", gomock.Any()).Return([]*domain.Influencer{}, nil)

	overview := svc.GetOverview(context.Background(), "brand-1", dateRange)

	require.Error(t, overview.TopClassifications.Err)
	assert.Empty(t, overview.TopClassifications.Data)

	assert.NoError(t, overview.Metrics.Err)
	assert.Equal(t, 100.0, overview.Metrics.Data.TotalRevenue)
	assert.NoError(t, overview.TopCoupons.Err)
	assert.Len(t, overview.TopCoupons.Data, 1)
	assert.NoError(t, overview.PendingOrders.Err)
	assert.Equal(t, 1, overview.PendingOrders.Data.Count)
	assert.NoError(t, overview.DailyRevenue.Err)
	assert.NoError(t, overview.TopUTMSources.Err)
}

func TestService_GetOverview_ContextoCancelado(t *testing.T) {
	// Sem EXPECT: nenhum card pode chegar ao banco
	svc, _ := newTestService(t, config.Dashboard{MaxConcurrentQueries: 1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	overview := svc.GetOverview(ctx, "brand-1", january(t))

	errs := []error{
		overview.Metrics.Err,
		overview.DailyRevenue.Err,
		overview.TopCoupons.Err,
		overview.TopClassifications.Err,
		overview.PendingOrders.Err,
		overview.TopUTMSources.Err,
	}
	for _, err := range errs {
		assert.ErrorIs(t, err, context.Canceled)
	}

	var reportErr *ReportError
	require.ErrorAs(t, overview.Metrics.Err, &reportErr)
	assert.Equal(t, apiErrors.ErrTimeout, reportErr.Code)

	require.NotNil(t, overview.Metrics.Data)
	assert.Equal(t, "brand-1", overview.Metrics.Data.BrandID)
	assert.NotNil(t, overview.DailyRevenue.Data)
	require.NotNil(t, overview.PendingOrders.Data)
	assert.NotNil(t, overview.PendingOrders.Data.Daily)
}

func TestService_WithCache(t *testing.T) {
	svc, m := newTestService(t, config.Dashboard{})
	svc.WithCache(&memoryCache{values: map[string][]byte{}})
	dateRange := january(t)

	// Só a primeira chamada chega no banco
	m.conversions.EXPECT().
		SelectConversions(gomock.Any(), "brand-1", gomock.Any()).
		Return([]*domain.Conversion{newConversion(10, domain.StatusPaid, true, withCoupon("c1", "A"))}, nil).
		Times(1)

	first, err := svc.GetTopCoupons(context.Background(), "brand-1", dateRange)
	require.NoError(t, err)

	second, err := svc.GetTopCoupons(context.Background(), "brand-1", dateRange)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
