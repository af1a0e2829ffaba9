package converting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trackrcommerce/trackr-api/infrastructure/repository"
	"github.com/trackrcommerce/trackr-api/infrastructure/repository/mocks"
	"github.com/trackrcommerce/trackr-api/internal/config"
	"github.com/trackrcommerce/trackr-api/internal/domain"
	"github.com/trackrcommerce/trackr-api/pkg/utils"
	"go.uber.org/mock/gomock"
)

type serviceMocks struct {
	conversions *mocks.MockConversionRepository
	coupons     *mocks.MockCouponRepository
	influencers *mocks.MockInfluencerRepository
}

var fixedNow = time.Date(2024, 2, 10, 15, 0, 0, 0, domain.BrandLocation)

func newTestService(t *testing.T) (*Service, serviceMocks) {
	ctrl := gomock.NewController(t)
	m := serviceMocks{
		conversions: mocks.NewMockConversionRepository(ctrl),
		coupons:     mocks.NewMockCouponRepository(ctrl),
		influencers: mocks.NewMockInfluencerRepository(ctrl),
	}
	svc := NewService(config.Dashboard{DefaultPageSize: 20}, m.conversions, m.coupons, m.influencers)
	svc.now = func() time.Time { return fixedNow }
	return svc, m
}

func january(t *testing.T) domain.DateRange {
	dateRange, err := domain.NewDateRange(
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return dateRange
}

func conversion(id, orderID string, amount float64, day int, couponCode *string) *domain.Conversion {
	return &domain.Conversion{
		ID:          id,
		OrderID:     orderID,
		OrderAmount: amount,
		CouponCode:  couponCode,
		Status:      domain.StatusPaid,
		OrderIsReal: true,
		SaleDate:    time.Date(2024, 1, day, 10, 0, 0, 0, domain.BrandLocation),
	}
}

func ids(conversions []*domain.Conversion) []string {
	out := make([]string, len(conversions))
	for i, c := range conversions {
		out[i] = c.ID
	}
	return out
}

func TestService_ListConversions_Ordenacao(t *testing.T) {
	rows := func() []*domain.Conversion {
		return []*domain.Conversion{
			conversion("c1", "1001", 50, 3, utils.Ptr("BETA")),
			conversion("c2", "1002", 150, 1, nil),
			conversion("c3", "1003", 50, 5, utils.Ptr("alfa")),
		}
	}

	tests := []struct {
		name      string
		sortBy    string
		direction domain.SortDirection
		expected  []string
	}{
		{"padrão por data decrescente", "", "", []string{"c3", "c1", "c2"}},
		{"valor crescente com desempate por id", SortByOrderAmount, domain.SortAsc, []string{"c1", "c3", "c2"}},
		{"valor decrescente com desempate por id", SortByOrderAmount, domain.SortDesc, []string{"c2", "c1", "c3"}},
		{"cupom crescente com nulos no fim", SortByCouponCode, domain.SortAsc, []string{"c3", "c1", "c2"}},
		{"cupom decrescente com nulos no fim", SortByCouponCode, domain.SortDesc, []string{"c1", "c3", "c2"}},
		{"pedido crescente", SortByOrderID, domain.SortAsc, []string{"c1", "c2", "c3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestService(t)
			m.conversions.EXPECT().SelectConversions(gomock.Any(), "brand-1", gomock.Any()).Return(rows(), nil)

			page, err := svc.ListConversions(context.Background(), "brand-1", domain.ConversionListParams{
				SortBy:        tt.sortBy,
				SortDirection: tt.direction,
				Range:         january(t),
			})

			require.NoError(t, err)
			assert.Equal(t, tt.expected, ids(page.Conversions))
			assert.Equal(t, 3, page.TotalCount)
		})
	}
}

func TestService_ListConversions_Filtros(t *testing.T) {
	t.Run("status e pedidos reais vão para a consulta", func(t *testing.T) {
		svc, m := newTestService(t)
		dateRange := january(t)
		status := domain.StatusPending
		onlyReal := true

		m.conversions.EXPECT().SelectConversions(gomock.Any(), "brand-1", repository.ConversionFilter{
			Range:       &dateRange,
			Statuses:    domain.StatusSet{domain.StatusPending},
			OrderIsReal: &onlyReal,
		}).Return([]*domain.Conversion{}, nil)

		page, err := svc.ListConversions(context.Background(), "brand-1", domain.ConversionListParams{
			Status:   &status,
			OnlyReal: true,
			Range:    dateRange,
		})

		require.NoError(t, err)
		assert.Empty(t, page.Conversions)
	})

	t.Run("status inválido não consulta o banco", func(t *testing.T) {
		svc, _ := newTestService(t)
		status := domain.ConversionStatus("enviado")

		page, err := svc.ListConversions(context.Background(), "brand-1", domain.ConversionListParams{Status: &status, Range: january(t)})

		assert.ErrorIs(t, err, ErrInvalidStatus)
		assert.NotNil(t, page.Conversions)
	})

	t.Run("código de cupom inexistente devolve página vazia sem erro", func(t *testing.T) {
		svc, m := newTestService(t)
		m.coupons.EXPECT().GetByCode(gomock.Any(), "brand-1", "NAOEXISTE").Return(nil, nil)

		page, err := svc.ListConversions(context.Background(), "brand-1", domain.ConversionListParams{
			CouponCode: utils.Ptr("NAOEXISTE"),
			Range:      january(t),
		})

		require.NoError(t, err)
		assert.Empty(t, page.Conversions)
		assert.Zero(t, page.TotalCount)
	})

	t.Run("código de cupom vira filtro por id", func(t *testing.T) {
		svc, m := newTestService(t)
		m.coupons.EXPECT().GetByCode(gomock.Any(), "brand-1", "MARIA10").Return(&domain.Coupon{ID: "cp-1", Code: "MARIA10"}, nil)
		m.conversions.EXPECT().SelectConversions(gomock.Any(), "brand-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, filter repository.ConversionFilter) ([]*domain.Conversion, error) {
				require.NotNil(t, filter.CouponID)
				assert.Equal(t, "cp-1", *filter.CouponID)
				return []*domain.Conversion{conversion("c1", "1001", 10, 2, utils.Ptr("MARIA10"))}, nil
			})

		page, err := svc.ListConversions(context.Background(), "brand-1", domain.ConversionListParams{
			CouponCode: utils.Ptr("MARIA10"),
			Range:      january(t),
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"c1"}, ids(page.Conversions))
	})

	t.Run("pedido filtrado em memória antes da paginação", func(t *testing.T) {
		svc, m := newTestService(t)
		m.conversions.EXPECT().SelectConversions(gomock.Any(), "brand-1", gomock.Any()).Return([]*domain.Conversion{
			conversion("c1", "1001", 10, 2, nil),
			conversion("c2", "1002", 10, 3, nil),
		}, nil)

		page, err := svc.ListConversions(context.Background(), "brand-1", domain.ConversionListParams{
			OrderID: utils.Ptr("1002"),
			Range:   january(t),
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"c2"}, ids(page.Conversions))
		assert.Equal(t, 1, page.TotalCount)
	})
}

func TestService_ListConversions_Paginacao(t *testing.T) {
	svc, m := newTestService(t)
	rows := make([]*domain.Conversion, 0, 25)
	for day := 1; day <= 25; day++ {
		rows = append(rows, conversion(string(rune('a'+day-1)), "pedido", 10, day, nil))
	}
	m.conversions.EXPECT().SelectConversions(gomock.Any(), "brand-1", gomock.Any()).Return(rows, nil)

	page, err := svc.ListConversions(context.Background(), "brand-1", domain.ConversionListParams{Page: 2, Range: january(t)})

	require.NoError(t, err)
	assert.Len(t, page.Conversions, 5)
	assert.Equal(t, 25, page.TotalCount)
	assert.Equal(t, "e", page.Conversions[0].ID)
}

func TestService_ListConversions_ErroDoBanco(t *testing.T) {
	svc, m := newTestService(t)
	m.conversions.EXPECT().SelectConversions(gomock.Any(), "brand-1", gomock.Any()).Return(nil, errors.New("conexão perdida"))

	page, err := svc.ListConversions(context.Background(), "brand-1", domain.ConversionListParams{Range: january(t)})

	assert.Error(t, err)
	assert.Empty(t, page.Conversions)
	assert.NotNil(t, page.Conversions)
}

func TestService_GetConversionFilterValues(t *testing.T) {
	svc, m := newTestService(t)
	dateRange := january(t)
	onlyReal := true

	fake := conversion("c4", "9999", 10, 4, utils.Ptr("FAKE"))
	fake.OrderIsReal = false
	pending := conversion("c3", "1001", 10, 4, utils.Ptr("MARIA10"))
	pending.Status = domain.StatusPending

	m.conversions.EXPECT().SelectConversions(gomock.Any(), "brand-1", repository.ConversionFilter{
		Range:       &dateRange,
		OrderIsReal: &onlyReal,
	}).Return([]*domain.Conversion{
		conversion("c1", "1002", 10, 2, utils.Ptr("MARIA10")),
		conversion("c2", "1001", 10, 3, nil),
		pending,
		fake,
	}, nil)

	values, err := svc.GetConversionFilterValues(context.Background(), "brand-1", dateRange)

	require.NoError(t, err)
	assert.Equal(t, []string{"1001", "1002"}, values.OrderIDs)
	assert.Equal(t, []string{"MARIA10"}, values.CouponCodes)
	assert.Equal(t, []string{"paid", "pending"}, values.Statuses)
}

func TestService_LogConversion(t *testing.T) {
	t.Run("comissão calculada pela taxa do influenciador", func(t *testing.T) {
		svc, m := newTestService(t)
		coupon := &domain.Coupon{ID: "cp-1", Code: "MARIA10", InfluencerID: utils.Ptr("inf-1"), ClassificationID: utils.Ptr("cl-1")}

		m.coupons.EXPECT().GetByID(gomock.Any(), "brand-1", "cp-1").Return(coupon, nil)
		m.influencers.EXPECT().GetByID(gomock.Any(), "brand-1", "inf-1").Return(&domain.Influencer{ID: "inf-1", CommissionRate: 12.5}, nil)
		m.conversions.EXPECT().LogConversion(gomock.Any(), gomock.Any()).Return(nil)

		result, err := svc.LogConversion(context.Background(), "brand-1", &domain.LogConversionRequest{
			OrderID:     " 1001 ",
			CouponID:    utils.Ptr("cp-1"),
			OrderAmount: 199.9,
		})

		require.NoError(t, err)
		assert.Equal(t, "1001", result.OrderID)
		assert.Equal(t, 24.99, result.CommissionAmount)
		assert.Equal(t, domain.StatusCompleted, result.Status)
		assert.True(t, result.OrderIsReal)
		assert.Equal(t, fixedNow, result.SaleDate)
		assert.Equal(t, "MARIA10", *result.CouponCode)
		assert.Equal(t, "cl-1", *result.CouponClassificationID)
	})

	t.Run("comissão informada prevalece", func(t *testing.T) {
		svc, m := newTestService(t)
		m.coupons.EXPECT().GetByID(gomock.Any(), "brand-1", "cp-1").Return(&domain.Coupon{ID: "cp-1", InfluencerID: utils.Ptr("inf-1")}, nil)
		m.conversions.EXPECT().LogConversion(gomock.Any(), gomock.Any()).Return(nil)

		result, err := svc.LogConversion(context.Background(), "brand-1", &domain.LogConversionRequest{
			OrderID:          "1001",
			CouponID:         utils.Ptr("cp-1"),
			OrderAmount:      100,
			CommissionAmount: utils.Ptr(7.0),
			Status:           domain.StatusPending,
			OrderIsReal:      utils.Ptr(false),
		})

		require.NoError(t, err)
		assert.Equal(t, 7.0, result.CommissionAmount)
		assert.Equal(t, domain.StatusPending, result.Status)
		assert.False(t, result.OrderIsReal)
	})

	tests := []struct {
		name     string
		brandID  string
		request  *domain.LogConversionRequest
		expected error
	}{
		{"marca vazia", "", &domain.LogConversionRequest{OrderID: "1"}, ErrBrandIDRequired},
		{"pedido vazio", "brand-1", &domain.LogConversionRequest{OrderID: "  "}, ErrOrderIDRequired},
		{"valor negativo", "brand-1", &domain.LogConversionRequest{OrderID: "1", OrderAmount: -1}, ErrInvalidOrderAmount},
		{"status desconhecido", "brand-1", &domain.LogConversionRequest{OrderID: "1", Status: "enviado"}, ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(t)

			result, err := svc.LogConversion(context.Background(), tt.brandID, tt.request)

			assert.ErrorIs(t, err, tt.expected)
			assert.Nil(t, result)
		})
	}

	t.Run("cupom inexistente não grava", func(t *testing.T) {
		svc, m := newTestService(t)
		m.coupons.EXPECT().GetByID(gomock.Any(), "brand-1", "cp-x").Return(nil, nil)

		result, err := svc.LogConversion(context.Background(), "brand-1", &domain.LogConversionRequest{OrderID: "1", CouponID: utils.Ptr("cp-x")})

		assert.ErrorIs(t, err, ErrCouponNotFound)
		assert.Nil(t, result)
	})
}

func TestService_ListInfluencerConversions(t *testing.T) {
	t.Run("filtra pelo influenciador e ordena do mais recente", func(t *testing.T) {
		svc, m := newTestService(t)
		dateRange := january(t)

		m.influencers.EXPECT().GetByID(gomock.Any(), "brand-1", "inf-1").Return(&domain.Influencer{ID: "inf-1", Name: "Ana"}, nil)
		m.conversions.EXPECT().
			SelectConversions(gomock.Any(), "brand-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, filter repository.ConversionFilter) ([]*domain.Conversion, error) {
				require.NotNil(t, filter.InfluencerID)
				assert.Equal(t, "inf-1", *filter.InfluencerID)
				assert.Equal(t, &dateRange, filter.Range)
				assert.Empty(t, filter.Statuses)
				return []*domain.Conversion{
					conversion("c1", "1001", 50, 3, utils.Ptr("ANA10")),
					conversion("c2", "1002", 70, 20, utils.Ptr("ANA15")),
				}, nil
			})

		conversions, err := svc.ListInfluencerConversions(context.Background(), "brand-1", "inf-1", &dateRange)

		require.NoError(t, err)
		assert.Equal(t, []string{"c2", "c1"}, ids(conversions))
	})

	t.Run("influenciador de outra marca", func(t *testing.T) {
		svc, m := newTestService(t)

		m.influencers.EXPECT().GetByID(gomock.Any(), "brand-1", "inf-9").Return(nil, nil)

		conversions, err := svc.ListInfluencerConversions(context.Background(), "brand-1", "inf-9", nil)

		assert.ErrorIs(t, err, ErrInfluencerNotFound)
		assert.NotNil(t, conversions)
		assert.Empty(t, conversions)
	})
}
