// Package couponing monta a tabela de cupons com métricas de uso, os valores
// dos filtros da tela de cupons e o cadastro de novos cupons.
package couponing

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/trackrcommerce/trackr-api/infrastructure/repository"
	"github.com/trackrcommerce/trackr-api/internal/config"
	"github.com/trackrcommerce/trackr-api/internal/domain"
	"github.com/trackrcommerce/trackr-api/pkg/log"
	"github.com/trackrcommerce/trackr-api/pkg/utils"
)

const (
	defaultPage                 = 1
	defaultLimit                = 20
	defaultMaxConcurrentQueries = 5
	generatedCodeLength         = 8
)

type CouponService interface {
	ListCouponsWithMetrics(ctx context.Context, brandID string, params domain.CouponListParams) (*domain.CouponPage, error)
	GetCouponFilterValues(ctx context.Context, brandID string, dateRange domain.DateRange) (*domain.CouponFilterValues, error)
	CreateCoupon(ctx context.Context, brandID string, request *domain.CreateCouponRequest) (*domain.Coupon, error)
	ListInfluencers(ctx context.Context, brandID string) ([]*domain.Influencer, error)
	GetCouponPerformance(ctx context.Context, brandID, couponID string, dateRange *domain.DateRange) (*domain.CouponPerformance, error)
	GetInfluencerPerformance(ctx context.Context, brandID, influencerID string, dateRange *domain.DateRange) (*domain.InfluencerPerformance, error)
}

type Service struct {
	cfg                      config.Dashboard
	couponRepository         repository.CouponRepository
	conversionRepository     repository.ConversionRepository
	classificationRepository repository.ClassificationRepository
	influencerRepository     repository.InfluencerRepository
}

func NewService(
	cfg config.Dashboard,
	couponRepo repository.CouponRepository,
	conversionRepo repository.ConversionRepository,
	classificationRepo repository.ClassificationRepository,
	influencerRepo repository.InfluencerRepository,
) *Service {
	return &Service{
		cfg:                      cfg,
		couponRepository:         couponRepo,
		conversionRepository:     conversionRepo,
		classificationRepository: classificationRepo,
		influencerRepository:     influencerRepo,
	}
}

// ListCouponsWithMetrics segue o pipeline busca → filtro → uso por cupom → ordenação → paginação.
// Qualquer falha devolve a página vazia com o erro.
func (s *Service) ListCouponsWithMetrics(ctx context.Context, brandID string, params domain.CouponListParams) (*domain.CouponPage, error) {
	if brandID == "" {
		return domain.EmptyCouponPage(), ErrBrandIDRequired
	}

	page, limit := params.Page, params.Limit
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = s.defaultLimit()
	}

	coupons, err := s.couponRepository.SelectCoupons(ctx, brandID, repository.CouponFilter{Code: params.CouponCode})
	if err != nil {
		return domain.EmptyCouponPage(), fmt.Errorf("erro ao buscar cupons: %w", err)
	}

	coupons = filterByInfluencer(coupons, params.InfluencerName)

	metrics, err := s.collectUsage(ctx, brandID, coupons, params.Range)
	if err != nil {
		log.ForContext(ctx).WithFields(log.Fields{
			"brand_id": brandID,
			"error":    err.Error(),
		}).Error("couponing: erro ao calcular uso dos cupons")
		return domain.EmptyCouponPage(), err
	}

	direction := params.SortDirection
	if direction == "" {
		direction = domain.SortDesc
	}
	sortMetrics(metrics, params.SortBy, direction)

	pageItems := utils.Paginate(metrics, page, limit)
	if err := s.resolveClassifications(ctx, brandID, pageItems); err != nil {
		return domain.EmptyCouponPage(), err
	}

	return &domain.CouponPage{
		Coupons:    pageItems,
		TotalCount: len(metrics),
	}, nil
}

func (s *Service) defaultLimit() int {
	if s.cfg.DefaultPageSize > 0 {
		return s.cfg.DefaultPageSize
	}
	return defaultLimit
}

// collectUsage consulta as conversões de cada cupom em paralelo, limitado por
// DASHBOARD_MAX_CONCURRENT_QUERIES. O primeiro erro cancela as consultas restantes.
func (s *Service) collectUsage(
	ctx context.Context,
	brandID string,
	coupons []*domain.Coupon,
	dateRange domain.DateRange,
) ([]*domain.CouponMetric, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	maxConcurrent := s.cfg.MaxConcurrentQueries
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrentQueries
	}

	metrics := make([]*domain.CouponMetric, len(coupons))
	semaphore := make(chan struct{}, maxConcurrent)

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)

	onlyReal := true
	for i, coupon := range coupons {
		wg.Add(1)
		go func(index int, coupon *domain.Coupon) {
			defer wg.Done()

			select {
			case semaphore <- struct{}{}:
			case <-ctx.Done():
				errOnce.Do(func() { firstErr = ctx.Err() })
				return
			}
			defer func() { <-semaphore }()

			couponID := coupon.ID
			conversions, err := s.conversionRepository.SelectConversions(ctx, brandID, repository.ConversionFilter{
				Range:       &dateRange,
				Statuses:    domain.RevenueStatusesCouponUsage,
				OrderIsReal: &onlyReal,
				CouponID:    &couponID,
			})
			if err != nil {
				errOnce.Do(func() {
					firstErr = fmt.Errorf("erro ao buscar conversões do cupom %s: %w", coupon.Code, err)
					cancel()
				})
				return
			}

			metrics[index] = composeMetric(coupon, conversions)
		}(i, coupon)
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	return metrics, nil
}

// resolveClassifications busca por id a classificação de cada cupom da página,
// inclusive as excluídas, para que cupons antigos continuem exibindo o nome
func (s *Service) resolveClassifications(ctx context.Context, brandID string, metrics []*domain.CouponMetric) error {
	resolved := make(map[string]*domain.CouponClassification)

	for _, metric := range metrics {
		if metric.ClassificationID == nil || *metric.ClassificationID == "" {
			continue
		}

		classificationID := *metric.ClassificationID
		classification, ok := resolved[classificationID]
		if !ok {
			var err error
			classification, err = s.classificationRepository.GetByID(ctx, brandID, classificationID)
			if err != nil {
				return fmt.Errorf("erro ao buscar classificação %s: %w", classificationID, err)
			}
			resolved[classificationID] = classification
		}

		metric.Classification = classification
	}

	return nil
}

// GetCouponFilterValues devolve os valores dos dropdowns: só cupons com ao menos
// uma venda qualificada no período e só classificações ativas
func (s *Service) GetCouponFilterValues(ctx context.Context, brandID string, dateRange domain.DateRange) (*domain.CouponFilterValues, error) {
	if brandID == "" {
		return domain.EmptyCouponFilterValues(), ErrBrandIDRequired
	}

	onlyReal := true
	conversions, err := s.conversionRepository.SelectConversions(ctx, brandID, repository.ConversionFilter{
		Range:       &dateRange,
		Statuses:    domain.RevenueStatusesCouponUsage,
		OrderIsReal: &onlyReal,
	})
	if err != nil {
		return domain.EmptyCouponFilterValues(), fmt.Errorf("erro ao buscar conversões: %w", err)
	}

	withSales := make(map[string]struct{})
	for _, conversion := range conversions {
		if conversion.CouponID != nil && conversion.IsRealizedRevenue(domain.RevenueStatusesCouponUsage) {
			withSales[*conversion.CouponID] = struct{}{}
		}
	}

	coupons, err := s.couponRepository.SelectCoupons(ctx, brandID, repository.CouponFilter{})
	if err != nil {
		return domain.EmptyCouponFilterValues(), fmt.Errorf("erro ao buscar cupons: %w", err)
	}

	codes := make([]string, 0, len(withSales))
	names := make([]string, 0, len(withSales))
	for _, coupon := range coupons {
		if _, ok := withSales[coupon.ID]; !ok {
			continue
		}
		codes = append(codes, coupon.Code)
		if coupon.InfluencerName != nil {
			names = append(names, *coupon.InfluencerName)
		}
	}

	isActive := true
	classifications, err := s.classificationRepository.SelectClassifications(ctx, brandID, &isActive)
	if err != nil {
		return domain.EmptyCouponFilterValues(), fmt.Errorf("erro ao buscar classificações: %w", err)
	}

	classificationNames := make([]string, 0, len(classifications))
	for _, classification := range classifications {
		if classification.IsActive {
			classificationNames = append(classificationNames, classification.Name)
		}
	}

	return &domain.CouponFilterValues{
		CouponCodes:     utils.DistinctSorted(codes),
		InfluencerNames: utils.DistinctSorted(names),
		Classifications: utils.DistinctSorted(classificationNames),
	}, nil
}

// CreateCoupon valida e grava um novo cupom ativo. Sem código informado, um código
// aleatório é gerado.
func (s *Service) CreateCoupon(ctx context.Context, brandID string, request *domain.CreateCouponRequest) (*domain.Coupon, error) {
	if brandID == "" {
		return nil, ErrBrandIDRequired
	}
	if !request.DiscountType.IsValid() {
		return nil, ErrInvalidDiscountType
	}
	if request.DiscountValue < 0 || (request.DiscountType == domain.DiscountPercentage && request.DiscountValue > 100) {
		return nil, ErrInvalidDiscountValue
	}

	code := strings.ToUpper(strings.TrimSpace(request.Code))
	if code == "" {
		generated, err := utils.GenerateCouponCode(generatedCodeLength)
		if err != nil {
			return nil, fmt.Errorf("erro ao gerar código do cupom: %w", err)
		}
		code = generated
	}

	coupon := &domain.Coupon{
		BrandID:       brandID,
		Code:          code,
		DiscountValue: request.DiscountValue,
		DiscountType:  request.DiscountType,
		IsActive:      true,
	}

	if request.InfluencerID != nil && *request.InfluencerID != "" {
		influencer, err := s.influencerRepository.GetByID(ctx, brandID, *request.InfluencerID)
		if err != nil {
			return nil, fmt.Errorf("erro ao buscar influenciador: %w", err)
		}
		if influencer == nil {
			return nil, ErrInfluencerNotFound
		}
		coupon.InfluencerID = &influencer.ID
		coupon.InfluencerName = &influencer.Name
	}

	if err := s.couponRepository.CreateCoupon(ctx, coupon); err != nil {
		return nil, fmt.Errorf("erro ao criar cupom: %w", err)
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"brand_id":    brandID,
		"coupon_code": coupon.Code,
	}).Info("couponing: cupom criado")

	return coupon, nil
}

func (s *Service) ListInfluencers(ctx context.Context, brandID string) ([]*domain.Influencer, error) {
	if brandID == "" {
		return []*domain.Influencer{}, ErrBrandIDRequired
	}

	influencers, err := s.influencerRepository.SelectInfluencers(ctx, brandID, nil)
	if err != nil {
		return []*domain.Influencer{}, fmt.Errorf("erro ao buscar influenciadores: %w", err)
	}

	return influencers, nil
}
