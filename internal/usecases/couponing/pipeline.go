package couponing

import (
	"cmp"
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/trackrcommerce/trackr-api/internal/domain"
	"github.com/trackrcommerce/trackr-api/pkg/utils"
)

// Campos aceitos em sort_by
const (
	SortByCode           = "code"
	SortByInfluencerName = "influencer_name"
	SortByDiscountValue  = "discount_value"
	SortByUsageCount     = "usage_count"
	SortByTotalSales     = "total_sales"
	SortByLastUsage      = "last_usage"
	SortByCreatedAt      = "created_at"
	SortByIsActive       = "is_active"
)

// filterByInfluencer aplica o filtro de influenciador depois do join. Cupons sem
// influenciador respondem pelo nome padrão.
func filterByInfluencer(coupons []*domain.Coupon, influencerName *string) []*domain.Coupon {
	if influencerName == nil || *influencerName == "" {
		return coupons
	}

	out := make([]*domain.Coupon, 0, len(coupons))
	for _, coupon := range coupons {
		if coupon.DisplayInfluencerName() == *influencerName {
			out = append(out, coupon)
		}
	}
	return out
}

// composeMetric junta o cupom com o uso dele no período
func composeMetric(coupon *domain.Coupon, conversions []*domain.Conversion) *domain.CouponMetric {
	metric := &domain.CouponMetric{
		Coupon:                *coupon,
		InfluencerDisplayName: coupon.DisplayInfluencerName(),
	}

	var total float64
	for _, conversion := range conversions {
		if !conversion.IsRealizedRevenue(domain.RevenueStatusesCouponUsage) {
			continue
		}

		metric.UsageCount++
		total += conversion.OrderAmount

		if metric.LastUsage == nil || conversion.SaleDate.After(*metric.LastUsage) {
			saleDate := conversion.SaleDate
			metric.LastUsage = &saleDate
		}
	}
	metric.TotalSales = utils.RoundWithTwoDecimalPlace(total)

	return metric
}

// NormalizeSortBy aceita camelCase (totalSales) ou snake_case (total_sales)
func NormalizeSortBy(sortBy string) string {
	var b strings.Builder
	for i, r := range sortBy {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}

	switch key := b.String(); key {
	case SortByCode, SortByInfluencerName, SortByDiscountValue, SortByUsageCount,
		SortByTotalSales, SortByLastUsage, SortByCreatedAt, SortByIsActive:
		return key
	}
	return SortByCreatedAt
}

// sortMetrics ordena pelo campo pedido; empates caem no id do cupom para a
// paginação ser estável entre chamadas
func sortMetrics(metrics []*domain.CouponMetric, sortBy string, direction domain.SortDirection) {
	sortBy = NormalizeSortBy(sortBy)

	desc := direction == domain.SortDesc

	slices.SortFunc(metrics, func(a, b *domain.CouponMetric) int {
		var result int

		switch sortBy {
		case SortByCode:
			result = utils.CompareNullable(&a.Code, &b.Code, desc, utils.CompareFold)
		case SortByInfluencerName:
			result = utils.CompareNullable(a.InfluencerName, b.InfluencerName, desc, utils.CompareFold)
		case SortByDiscountValue:
			result = utils.CompareNullable(&a.DiscountValue, &b.DiscountValue, desc, cmp.Compare[float64])
		case SortByUsageCount:
			result = utils.CompareNullable(&a.UsageCount, &b.UsageCount, desc, cmp.Compare[int])
		case SortByTotalSales:
			result = utils.CompareNullable(&a.TotalSales, &b.TotalSales, desc, cmp.Compare[float64])
		case SortByLastUsage:
			result = utils.CompareNullable(a.LastUsage, b.LastUsage, desc, time.Time.Compare)
		case SortByIsActive:
			result = utils.CompareNullable(&a.IsActive, &b.IsActive, desc, utils.CompareBool)
		default:
			result = utils.CompareNullable(&a.CreatedAt, &b.CreatedAt, desc, time.Time.Compare)
		}

		if result != 0 {
			return result
		}
		return strings.Compare(a.ID, b.ID)
	})
}
