package couponing

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trackrcommerce/trackr-api/infrastructure/repository"
	"github.com/trackrcommerce/trackr-api/infrastructure/repository/mocks"
	"github.com/trackrcommerce/trackr-api/internal/config"
	"github.com/trackrcommerce/trackr-api/internal/domain"
	"go.uber.org/mock/gomock"
)

type serviceMocks struct {
	coupons         *mocks.MockCouponRepository
	conversions     *mocks.MockConversionRepository
	classifications *mocks.MockClassificationRepository
	influencers     *mocks.MockInfluencerRepository
}

func newTestService(t *testing.T) (*Service, serviceMocks) {
	ctrl := gomock.NewController(t)
	m := serviceMocks{
		coupons:         mocks.NewMockCouponRepository(ctrl),
		conversions:     mocks.NewMockConversionRepository(ctrl),
		classifications: mocks.NewMockClassificationRepository(ctrl),
		influencers:     mocks.NewMockInfluencerRepository(ctrl),
	}
	svc := NewService(config.Dashboard{MaxConcurrentQueries: 3}, m.coupons, m.conversions, m.classifications, m.influencers)
	return svc, m
}

func strPtr(s string) *string { return &s }

func january(t *testing.T) domain.DateRange {
	dateRange, err := domain.NewDateRange(
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return dateRange
}

// salesByCoupon responde o fan-out com as conversões do cupom pedido
func salesByCoupon(sales map[string][]*domain.Conversion) func(context.Context, string, repository.ConversionFilter) ([]*domain.Conversion, error) {
	return func(_ context.Context, _ string, filter repository.ConversionFilter) ([]*domain.Conversion, error) {
		if filter.CouponID == nil {
			return nil, errors.New("consulta sem cupom")
		}
		return sales[*filter.CouponID], nil
	}
}

func paidSale(couponID string, amount float64, day int) *domain.Conversion {
	return &domain.Conversion{
		ID:          fmt.Sprintf("%s-%d", couponID, day),
		CouponID:    strPtr(couponID),
		OrderAmount: amount,
		Status:      domain.StatusPaid,
		OrderIsReal: true,
		SaleDate:    time.Date(2024, 1, day, 12, 0, 0, 0, domain.BrandLocation),
	}
}

func fifteenCoupons() ([]*domain.Coupon, map[string][]*domain.Conversion) {
	coupons := make([]*domain.Coupon, 0, 15)
	sales := make(map[string][]*domain.Conversion)
	for i := 1; i <= 15; i++ {
		id := fmt.Sprintf("cp-%02d", i)
		coupons = append(coupons, &domain.Coupon{ID: id, Code: fmt.Sprintf("CUPOM%02d", i), IsActive: true})
		sales[id] = []*domain.Conversion{paidSale(id, float64(i*10), i)}
	}
	return coupons, sales
}

func TestService_ListCouponsWithMetrics_Paginacao(t *testing.T) {
	svc, m := newTestService(t)
	coupons, sales := fifteenCoupons()

	m.coupons.EXPECT().SelectCoupons(gomock.Any(), "brand-1", repository.CouponFilter{}).Return(coupons, nil).Times(2)
	m.conversions.EXPECT().SelectConversions(gomock.Any(), "brand-1", gomock.Any()).DoAndReturn(salesByCoupon(sales)).Times(30)

	params := domain.CouponListParams{Page: 1, Limit: 10, SortBy: "totalSales", SortDirection: domain.SortDesc, Range: january(t)}

	first, err := svc.ListCouponsWithMetrics(context.Background(), "brand-1", params)
	require.NoError(t, err)
	require.Len(t, first.Coupons, 10)
	assert.Equal(t, 15, first.TotalCount)
	assert.Equal(t, "CUPOM15", first.Coupons[0].Code)
	assert.Equal(t, 150.0, first.Coupons[0].TotalSales)
	assert.Equal(t, "CUPOM06", first.Coupons[9].Code)

	params.Page = 2
	second, err := svc.ListCouponsWithMetrics(context.Background(), "brand-1", params)
	require.NoError(t, err)
	require.Len(t, second.Coupons, 5)
	assert.Equal(t, 15, second.TotalCount)
	assert.Equal(t, "CUPOM05", second.Coupons[0].Code)
	assert.Equal(t, "CUPOM01", second.Coupons[4].Code)
}

func TestService_ListCouponsWithMetrics_OrdemDeterministica(t *testing.T) {
	svc, m := newTestService(t)

	// Todos com a mesma venda: o desempate é o id do cupom
	coupons := []*domain.Coupon{{ID: "c3", Code: "C"}, {ID: "c1", Code: "A"}, {ID: "c2", Code: "B"}}
	sales := map[string][]*domain.Conversion{
		"c1": {paidSale("c1", 10, 2)},
		"c2": {paidSale("c2", 10, 2)},
		"c3": {paidSale("c3", 10, 2)},
	}

	m.coupons.EXPECT().SelectCoupons(gomock.Any(), "brand-1", gomock.Any()).Return(coupons, nil).Times(2)
	m.conversions.EXPECT().SelectConversions(gomock.Any(), "brand-1", gomock.Any()).DoAndReturn(salesByCoupon(sales)).Times(6)

	params := domain.CouponListParams{Page: 1, Limit: 10, SortBy: SortByTotalSales, SortDirection: domain.SortDesc, Range: january(t)}

	first, err := svc.ListCouponsWithMetrics(context.Background(), "brand-1", params)
	require.NoError(t, err)
	second, err := svc.ListCouponsWithMetrics(context.Background(), "brand-1", params)
	require.NoError(t, err)

	codes := func(page *domain.CouponPage) []string {
		out := []string{}
		for _, coupon := range page.Coupons {
			out = append(out, coupon.ID)
		}
		return out
	}

	assert.Equal(t, []string{"c1", "c2", "c3"}, codes(first))
	assert.Equal(t, codes(first), codes(second))
	assert.Equal(t, first.TotalCount, second.TotalCount)
}

func TestService_ListCouponsWithMetrics_FiltroDeInfluenciador(t *testing.T) {
	svc, m := newTestService(t)

	coupons := []*domain.Coupon{
		{ID: "c1", Code: "ANA10", InfluencerName: strPtr("Ana")},
		{ID: "c2", Code: "BIA10", InfluencerName: strPtr("Bia")},
		{ID: "c3", Code: "LOJA10"},
	}

	m.coupons.EXPECT().SelectCoupons(gomock.Any(), "brand-1", gomock.Any()).Return(coupons, nil).Times(2)
	m.conversions.EXPECT().SelectConversions(gomock.Any(), "brand-1", gomock.Any()).Return(nil, nil).Times(2)

	page, err := svc.ListCouponsWithMetrics(context.Background(), "brand-1", domain.CouponListParams{
		InfluencerName: strPtr("Ana"),
		Range:          january(t),
	})
	require.NoError(t, err)
	require.Len(t, page.Coupons, 1)
	assert.Equal(t, "ANA10", page.Coupons[0].Code)

	page, err = svc.ListCouponsWithMetrics(context.Background(), "brand-1", domain.CouponListParams{
		InfluencerName: strPtr(domain.NoInfluencerName),
		Range:          january(t),
	})
	require.NoError(t, err)
	require.Len(t, page.Coupons, 1)
	assert.Equal(t, "LOJA10", page.Coupons[0].Code)
	assert.Equal(t, domain.NoInfluencerName, page.Coupons[0].InfluencerDisplayName)
}

func TestService_ListCouponsWithMetrics_NulosPorUltimo(t *testing.T) {
	for _, direction := range []domain.SortDirection{domain.SortAsc, domain.SortDesc} {
		t.Run(string(direction), func(t *testing.T) {
			svc, m := newTestService(t)

			coupons := []*domain.Coupon{{ID: "c1", Code: "SEMUSO"}, {ID: "c2", Code: "USADO"}, {ID: "c3", Code: "RECENTE"}}
			sales := map[string][]*domain.Conversion{
				"c2": {paidSale("c2", 10, 5)},
				"c3": {paidSale("c3", 10, 20)},
			}

			m.coupons.EXPECT().SelectCoupons(gomock.Any(), "brand-1", gomock.Any()).Return(coupons, nil)
			m.conversions.EXPECT().SelectConversions(gomock.Any(), "brand-1", gomock.Any()).DoAndReturn(salesByCoupon(sales)).Times(3)

			page, err := svc.ListCouponsWithMetrics(context.Background(), "brand-1", domain.CouponListParams{
				SortBy:        "lastUsage",
				SortDirection: direction,
				Range:         january(t),
			})
			require.NoError(t, err)
			require.Len(t, page.Coupons, 3)

			assert.Equal(t, "SEMUSO", page.Coupons[2].Code)
			assert.Nil(t, page.Coupons[2].LastUsage)
			assert.Equal(t, 0, page.Coupons[2].UsageCount)
		})
	}
}

func TestService_ListCouponsWithMetrics_ErroDevolvePaginaVazia(t *testing.T) {
	svc, m := newTestService(t)
	coupons, _ := fifteenCoupons()

	m.coupons.EXPECT().SelectCoupons(gomock.Any(), "brand-1", gomock.Any()).Return(coupons, nil)
	m.conversions.EXPECT().
		SelectConversions(gomock.Any(), "brand-1", gomock.Any()).
		Return(nil, errors.New("conexão perdida")).
		MinTimes(1).
		MaxTimes(len(coupons))

	page, err := svc.ListCouponsWithMetrics(context.Background(), "brand-1", domain.CouponListParams{Range: january(t)})

	require.Error(t, err)
	require.NotNil(t, page)
	assert.NotNil(t, page.Coupons)
	assert.Empty(t, page.Coupons)
	assert.Equal(t, 0, page.TotalCount)
}

func TestService_ClassificacaoExcluida(t *testing.T) {
	dateRange := january(t)
	embaixador := &domain.CouponClassification{ID: "cl-emb", Name: "Embaixador", IsActive: false}
	coupons := []*domain.Coupon{
		{ID: "cx", Code: "CUPOMX", InfluencerName: strPtr("Ana"), ClassificationID: strPtr("cl-emb")},
	}
	sales := map[string][]*domain.Conversion{"cx": {paidSale("cx", 50, 3)}}

	t.Run("dropdown não lista a classificação excluída", func(t *testing.T) {
		svc, m := newTestService(t)

		m.conversions.EXPECT().SelectConversions(gomock.Any(), "brand-1", gomock.Any()).Return(sales["cx"], nil)
		m.coupons.EXPECT().SelectCoupons(gomock.Any(), "brand-1", repository.CouponFilter{}).Return(coupons, nil)
		m.classifications.EXPECT().
			SelectClassifications(gomock.Any(), "brand-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, isActive *bool) ([]*domain.CouponClassification, error) {
				require.NotNil(t, isActive)
				assert.True(t, *isActive)
				return []*domain.CouponClassification{{ID: "cl-inf", Name: "Influencer", IsActive: true}}, nil
			})

		values, err := svc.GetCouponFilterValues(context.Background(), "brand-1", dateRange)

		require.NoError(t, err)
		assert.Equal(t, []string{"CUPOMX"}, values.CouponCodes)
		assert.Equal(t, []string{"Ana"}, values.InfluencerNames)
		assert.Equal(t, []string{"Influencer"}, values.Classifications)
	})

	t.Run("linha do cupom continua exibindo a classificação", func(t *testing.T) {
		svc, m := newTestService(t)

		m.coupons.EXPECT().SelectCoupons(gomock.Any(), "brand-1", gomock.Any()).Return(coupons, nil)
		m.conversions.EXPECT().SelectConversions(gomock.Any(), "brand-1", gomock.Any()).DoAndReturn(salesByCoupon(sales))
		m.classifications.EXPECT().GetByID(gomock.Any(), "brand-1", "cl-emb").Return(embaixador, nil)

		page, err := svc.ListCouponsWithMetrics(context.Background(), "brand-1", domain.CouponListParams{Range: dateRange})

		require.NoError(t, err)
		require.Len(t, page.Coupons, 1)
		require.NotNil(t, page.Coupons[0].Classification)
		assert.Equal(t, "Embaixador", page.Coupons[0].Classification.Name)
	})
}

func TestService_GetCouponFilterValues_SemVendas(t *testing.T) {
	svc, m := newTestService(t)

	m.conversions.EXPECT().SelectConversions(gomock.Any(), "brand-1", gomock.Any()).Return([]*domain.Conversion{}, nil)
	m.coupons.EXPECT().SelectCoupons(gomock.Any(), "brand-1", gomock.Any()).Return([]*domain.Coupon{{ID: "c1", Code: "A"}}, nil)
	m.classifications.EXPECT().SelectClassifications(gomock.Any(), "brand-1", gomock.Any()).Return(nil, nil)

	values, err := svc.GetCouponFilterValues(context.Background(), "brand-1", january(t))

	require.NoError(t, err)
	assert.Empty(t, values.CouponCodes)
	assert.NotNil(t, values.CouponCodes)
}

func TestService_CreateCoupon(t *testing.T) {
	t.Run("tipo de desconto inválido não grava", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.CreateCoupon(context.Background(), "brand-1", &domain.CreateCouponRequest{
			Code:         "X",
			DiscountType: "frete",
		})

		assert.ErrorIs(t, err, ErrInvalidDiscountType)
	})

	t.Run("percentual acima de 100", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.CreateCoupon(context.Background(), "brand-1", &domain.CreateCouponRequest{
			DiscountValue: 120,
			DiscountType:  domain.DiscountPercentage,
		})

		assert.ErrorIs(t, err, ErrInvalidDiscountValue)
	})

	t.Run("gera código quando vazio", func(t *testing.T) {
		svc, m := newTestService(t)

		m.influencers.EXPECT().GetByID(gomock.Any(), "brand-1", "inf-1").Return(&domain.Influencer{ID: "inf-1", Name: "Ana"}, nil)
		m.coupons.EXPECT().CreateCoupon(gomock.Any(), gomock.Any()).Return(nil)

		coupon, err := svc.CreateCoupon(context.Background(), "brand-1", &domain.CreateCouponRequest{
			InfluencerID:  strPtr("inf-1"),
			DiscountValue: 10,
			DiscountType:  domain.DiscountPercentage,
		})

		require.NoError(t, err)
		assert.Len(t, coupon.Code, generatedCodeLength)
		assert.Equal(t, "Ana", *coupon.InfluencerName)
		assert.True(t, coupon.IsActive)
	})

	t.Run("influenciador de outra marca", func(t *testing.T) {
		svc, m := newTestService(t)

		m.influencers.EXPECT().GetByID(gomock.Any(), "brand-1", "inf-9").Return(nil, nil)

		_, err := svc.CreateCoupon(context.Background(), "brand-1", &domain.CreateCouponRequest{
			Code:          "ana10",
			InfluencerID:  strPtr("inf-9"),
			DiscountValue: 10,
			DiscountType:  domain.DiscountAbsolute,
		})

		assert.ErrorIs(t, err, ErrInfluencerNotFound)
	})

	t.Run("código duplicado", func(t *testing.T) {
		svc, m := newTestService(t)

		m.coupons.EXPECT().CreateCoupon(gomock.Any(), gomock.Any()).Return(ErrDuplicateCoupon)

		_, err := svc.CreateCoupon(context.Background(), "brand-1", &domain.CreateCouponRequest{
			Code:          "ana10",
			DiscountValue: 10,
			DiscountType:  domain.DiscountAbsolute,
		})

		assert.ErrorIs(t, err, ErrDuplicateCoupon)
	})
}

func TestNormalizeSortBy(t *testing.T) {
	tests := map[string]string{
		"totalSales":     SortByTotalSales,
		"total_sales":    SortByTotalSales,
		"influencerName": SortByInfluencerName,
		"isActive":       SortByIsActive,
		"desconhecido":   SortByCreatedAt,
		"":               SortByCreatedAt,
	}

	for input, want := range tests {
		assert.Equal(t, want, NormalizeSortBy(input), input)
	}
}
