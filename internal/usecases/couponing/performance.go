package couponing

import (
	"context"
	"fmt"

	"github.com/trackrcommerce/trackr-api/infrastructure/repository"
	"github.com/trackrcommerce/trackr-api/internal/domain"
	"github.com/trackrcommerce/trackr-api/pkg/log"
	"github.com/trackrcommerce/trackr-api/pkg/utils"
)

// composePerformance soma as vendas qualificadas do cupom
func composePerformance(coupon *domain.Coupon, conversions []*domain.Conversion) *domain.CouponPerformance {
	performance := &domain.CouponPerformance{
		CouponID:       coupon.ID,
		Code:           coupon.Code,
		InfluencerName: coupon.DisplayInfluencerName(),
		IsActive:       coupon.IsActive,
	}

	var sales, commission float64
	for _, conversion := range conversions {
		if !conversion.IsRealizedRevenue(domain.RevenueStatusesCouponUsage) {
			continue
		}

		performance.UsageCount++
		sales += conversion.OrderAmount
		commission += conversion.CommissionAmount

		if performance.LastSale == nil || conversion.SaleDate.After(*performance.LastSale) {
			saleDate := conversion.SaleDate
			performance.LastSale = &saleDate
		}
	}

	performance.TotalSales = utils.RoundWithTwoDecimalPlace(sales)
	performance.TotalCommission = utils.RoundWithTwoDecimalPlace(commission)

	return performance
}

func usageFilter(dateRange *domain.DateRange) repository.ConversionFilter {
	onlyReal := true
	return repository.ConversionFilter{
		Range:       dateRange,
		Statuses:    domain.RevenueStatusesCouponUsage,
		OrderIsReal: &onlyReal,
	}
}

// GetCouponPerformance devolve o uso do cupom. Sem período, considera todo o histórico.
func (s *Service) GetCouponPerformance(ctx context.Context, brandID, couponID string, dateRange *domain.DateRange) (*domain.CouponPerformance, error) {
	if brandID == "" {
		return nil, ErrBrandIDRequired
	}

	coupon, err := s.couponRepository.GetByID(ctx, brandID, couponID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar cupom: %w", err)
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}

	filter := usageFilter(dateRange)
	filter.CouponID = &coupon.ID

	conversions, err := s.conversionRepository.SelectConversions(ctx, brandID, filter)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar conversões do cupom %s: %w", coupon.Code, err)
	}

	return composePerformance(coupon, conversions), nil
}

// GetInfluencerPerformance soma o uso de todos os cupons do influenciador com uma
// única consulta de conversões. Sem período, considera todo o histórico.
func (s *Service) GetInfluencerPerformance(ctx context.Context, brandID, influencerID string, dateRange *domain.DateRange) (*domain.InfluencerPerformance, error) {
	if brandID == "" {
		return nil, ErrBrandIDRequired
	}

	influencer, err := s.influencerRepository.GetByID(ctx, brandID, influencerID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar influenciador: %w", err)
	}
	if influencer == nil {
		return nil, ErrInfluencerNotFound
	}

	coupons, err := s.couponRepository.SelectCoupons(ctx, brandID, repository.CouponFilter{InfluencerID: &influencer.ID})
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar cupons: %w", err)
	}

	performance := &domain.InfluencerPerformance{
		InfluencerID:   influencer.ID,
		Name:           influencer.Name,
		CommissionRate: influencer.CommissionRate,
		TotalCoupons:   len(coupons),
		Coupons:        make([]*domain.CouponPerformance, 0, len(coupons)),
	}
	if len(coupons) == 0 {
		return performance, nil
	}

	couponIDs := make([]string, 0, len(coupons))
	for _, coupon := range coupons {
		couponIDs = append(couponIDs, coupon.ID)
	}

	filter := usageFilter(dateRange)
	filter.CouponIDs = couponIDs

	conversions, err := s.conversionRepository.SelectConversions(ctx, brandID, filter)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar conversões do influenciador: %w", err)
	}

	byCoupon := make(map[string][]*domain.Conversion, len(coupons))
	for _, conversion := range conversions {
		if conversion.CouponID != nil {
			byCoupon[*conversion.CouponID] = append(byCoupon[*conversion.CouponID], conversion)
		}
	}

	var sales, commission float64
	for _, coupon := range coupons {
		couponPerformance := composePerformance(coupon, byCoupon[coupon.ID])
		performance.Coupons = append(performance.Coupons, couponPerformance)

		if coupon.IsActive {
			performance.ActiveCoupons++
		}
		performance.UsageCount += couponPerformance.UsageCount
		sales += couponPerformance.TotalSales
		commission += couponPerformance.TotalCommission

		if couponPerformance.LastSale != nil &&
			(performance.LastSale == nil || couponPerformance.LastSale.After(*performance.LastSale)) {
			performance.LastSale = couponPerformance.LastSale
		}
	}

	performance.TotalSales = utils.RoundWithTwoDecimalPlace(sales)
	performance.TotalCommission = utils.RoundWithTwoDecimalPlace(commission)

	log.ForContext(ctx).WithFields(log.Fields{
		"brand_id":      brandID,
		"influencer_id": influencer.ID,
		"coupons":       len(coupons),
		"usage_count":   performance.UsageCount,
	}).Debug("couponing: desempenho do influenciador calculado")

	return performance, nil
}
