// Package converting lista e registra as conversões (pedidos) de uma marca
package converting

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/trackrcommerce/trackr-api/infrastructure/repository"
	"github.com/trackrcommerce/trackr-api/internal/config"
	"github.com/trackrcommerce/trackr-api/internal/domain"
	"github.com/trackrcommerce/trackr-api/pkg/log"
	"github.com/trackrcommerce/trackr-api/pkg/utils"
)

const (
	SortBySaleDate         = "sale_date"
	SortByOrderAmount      = "order_amount"
	SortByCommissionAmount = "commission_amount"
	SortByStatus           = "status"
	SortByOrderID          = "order_id"
	SortByCouponCode       = "coupon_code"

	defaultPage  = 1
	defaultLimit = 20
)

type ConversionService interface {
	ListConversions(ctx context.Context, brandID string, params domain.ConversionListParams) (*domain.ConversionPage, error)
	GetConversionFilterValues(ctx context.Context, brandID string, dateRange domain.DateRange) (*domain.ConversionFilterValues, error)
	LogConversion(ctx context.Context, brandID string, request *domain.LogConversionRequest) (*domain.Conversion, error)
	ListInfluencerConversions(ctx context.Context, brandID, influencerID string, dateRange *domain.DateRange) ([]*domain.Conversion, error)
}

type Service struct {
	cfg                  config.Dashboard
	conversionRepository repository.ConversionRepository
	couponRepository     repository.CouponRepository
	influencerRepository repository.InfluencerRepository
	now                  func() time.Time
}

func NewService(
	cfg config.Dashboard,
	conversionRepo repository.ConversionRepository,
	couponRepo repository.CouponRepository,
	influencerRepo repository.InfluencerRepository,
) *Service {
	return &Service{
		cfg:                  cfg,
		conversionRepository: conversionRepo,
		couponRepository:     couponRepo,
		influencerRepository: influencerRepo,
		now:                  time.Now,
	}
}

// ListConversions monta a tabela de conversões: filtros no banco, filtro de pedido
// em memória, ordenação e paginação
func (s *Service) ListConversions(ctx context.Context, brandID string, params domain.ConversionListParams) (*domain.ConversionPage, error) {
	if brandID == "" {
		return domain.EmptyConversionPage(), ErrBrandIDRequired
	}

	filter := repository.ConversionFilter{Range: &params.Range}

	if params.Status != nil {
		if !params.Status.IsValid() {
			return domain.EmptyConversionPage(), ErrInvalidStatus
		}
		filter.Statuses = domain.StatusSet{*params.Status}
	}

	if params.OnlyReal {
		onlyReal := true
		filter.OrderIsReal = &onlyReal
	}

	if params.CouponCode != nil && *params.CouponCode != "" {
		coupon, err := s.couponRepository.GetByCode(ctx, brandID, *params.CouponCode)
		if err != nil {
			return domain.EmptyConversionPage(), fmt.Errorf("erro ao buscar cupom: %w", err)
		}
		// Código inexistente não é erro: a tabela só fica vazia
		if coupon == nil {
			return domain.EmptyConversionPage(), nil
		}
		filter.CouponID = &coupon.ID
	}

	conversions, err := s.conversionRepository.SelectConversions(ctx, brandID, filter)
	if err != nil {
		return domain.EmptyConversionPage(), fmt.Errorf("erro ao buscar conversões: %w", err)
	}

	if params.OrderID != nil && *params.OrderID != "" {
		conversions = filterByOrderID(conversions, *params.OrderID)
	}

	direction := params.SortDirection
	if direction == "" {
		direction = domain.SortDesc
	}
	sortConversions(conversions, params.SortBy, direction)

	page, limit := params.Page, params.Limit
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
		if s.cfg.DefaultPageSize > 0 {
			limit = s.cfg.DefaultPageSize
		}
	}

	return &domain.ConversionPage{
		Conversions: utils.Paginate(conversions, page, limit),
		TotalCount:  len(conversions),
	}, nil
}

// ListInfluencerConversions lista os pedidos feitos com qualquer cupom do
// influenciador, do mais recente para o mais antigo. Todos os status entram.
func (s *Service) ListInfluencerConversions(ctx context.Context, brandID, influencerID string, dateRange *domain.DateRange) ([]*domain.Conversion, error) {
	empty := []*domain.Conversion{}

	if brandID == "" {
		return empty, ErrBrandIDRequired
	}

	influencer, err := s.influencerRepository.GetByID(ctx, brandID, influencerID)
	if err != nil {
		return empty, fmt.Errorf("erro ao buscar influenciador: %w", err)
	}
	if influencer == nil {
		return empty, ErrInfluencerNotFound
	}

	conversions, err := s.conversionRepository.SelectConversions(ctx, brandID, repository.ConversionFilter{
		Range:        dateRange,
		InfluencerID: &influencer.ID,
	})
	if err != nil {
		return empty, fmt.Errorf("erro ao buscar conversões do influenciador: %w", err)
	}

	sortConversions(conversions, SortBySaleDate, domain.SortDesc)

	return conversions, nil
}

func filterByOrderID(conversions []*domain.Conversion, orderID string) []*domain.Conversion {
	out := make([]*domain.Conversion, 0, len(conversions))
	for _, conversion := range conversions {
		if conversion.OrderID == orderID {
			out = append(out, conversion)
		}
	}
	return out
}

func sortConversions(conversions []*domain.Conversion, sortBy string, direction domain.SortDirection) {
	desc := direction == domain.SortDesc

	slices.SortFunc(conversions, func(a, b *domain.Conversion) int {
		var result int

		switch sortBy {
		case SortByOrderAmount:
			result = utils.CompareNullable(&a.OrderAmount, &b.OrderAmount, desc, cmp.Compare[float64])
		case SortByCommissionAmount:
			result = utils.CompareNullable(&a.CommissionAmount, &b.CommissionAmount, desc, cmp.Compare[float64])
		case SortByStatus:
			result = utils.CompareNullable(&a.Status, &b.Status, desc, cmp.Compare[domain.ConversionStatus])
		case SortByOrderID:
			result = utils.CompareNullable(&a.OrderID, &b.OrderID, desc, utils.CompareFold)
		case SortByCouponCode:
			result = utils.CompareNullable(a.CouponCode, b.CouponCode, desc, utils.CompareFold)
		default:
			result = utils.CompareNullable(&a.SaleDate, &b.SaleDate, desc, time.Time.Compare)
		}

		if result != 0 {
			return result
		}
		return strings.Compare(a.ID, b.ID)
	})
}

// GetConversionFilterValues devolve os valores dos dropdowns da tela de conversões,
// considerando só pedidos reais no período
func (s *Service) GetConversionFilterValues(ctx context.Context, brandID string, dateRange domain.DateRange) (*domain.ConversionFilterValues, error) {
	if brandID == "" {
		return domain.EmptyConversionFilterValues(), ErrBrandIDRequired
	}

	onlyReal := true
	conversions, err := s.conversionRepository.SelectConversions(ctx, brandID, repository.ConversionFilter{
		Range:       &dateRange,
		OrderIsReal: &onlyReal,
	})
	if err != nil {
		return domain.EmptyConversionFilterValues(), fmt.Errorf("erro ao buscar conversões: %w", err)
	}

	orderIDs := make([]string, 0, len(conversions))
	couponCodes := make([]string, 0, len(conversions))
	statuses := make([]string, 0, len(conversions))

	for _, conversion := range conversions {
		if !conversion.OrderIsReal || !dateRange.Contains(conversion.SaleDate) {
			continue
		}
		orderIDs = append(orderIDs, conversion.OrderID)
		if conversion.CouponCode != nil {
			couponCodes = append(couponCodes, *conversion.CouponCode)
		}
		statuses = append(statuses, string(conversion.Status))
	}

	return &domain.ConversionFilterValues{
		OrderIDs:    utils.DistinctSorted(orderIDs),
		CouponCodes: utils.DistinctSorted(couponCodes),
		Statuses:    utils.DistinctSorted(statuses),
	}, nil
}

// LogConversion registra um pedido manualmente ou vindo da sincronização da loja.
// Sem comissão informada, ela é calculada pela taxa do influenciador do cupom.
func (s *Service) LogConversion(ctx context.Context, brandID string, request *domain.LogConversionRequest) (*domain.Conversion, error) {
	if brandID == "" {
		return nil, ErrBrandIDRequired
	}
	if strings.TrimSpace(request.OrderID) == "" {
		return nil, ErrOrderIDRequired
	}
	if request.OrderAmount < 0 {
		return nil, ErrInvalidOrderAmount
	}

	status := request.Status
	if status == "" {
		status = domain.StatusCompleted
	}
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	conversion := &domain.Conversion{
		BrandID:       brandID,
		OrderID:       strings.TrimSpace(request.OrderID),
		OrderNumber:   request.OrderNumber,
		OrderAmount:   request.OrderAmount,
		Status:        status,
		OrderIsReal:   true,
		SaleDate:      s.now(),
		CustomerID:    request.CustomerID,
		CustomerEmail: request.CustomerEmail,
		Metadata:      request.Metadata,
	}

	if request.OrderIsReal != nil {
		conversion.OrderIsReal = *request.OrderIsReal
	}
	if request.SaleDate != nil {
		conversion.SaleDate = *request.SaleDate
	}
	if request.CommissionAmount != nil {
		conversion.CommissionAmount = *request.CommissionAmount
	}

	if request.CouponID != nil && *request.CouponID != "" {
		coupon, err := s.couponRepository.GetByID(ctx, brandID, *request.CouponID)
		if err != nil {
			return nil, fmt.Errorf("erro ao buscar cupom: %w", err)
		}
		if coupon == nil {
			return nil, ErrCouponNotFound
		}

		conversion.CouponID = &coupon.ID
		conversion.CouponCode = &coupon.Code
		conversion.CouponClassificationID = coupon.ClassificationID

		if request.CommissionAmount == nil {
			commission, err := s.commissionFor(ctx, brandID, coupon, request.OrderAmount)
			if err != nil {
				return nil, err
			}
			conversion.CommissionAmount = commission
		}
	}

	if err := s.conversionRepository.LogConversion(ctx, conversion); err != nil {
		return nil, fmt.Errorf("erro ao registrar conversão: %w", err)
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"brand_id": brandID,
		"order_id": conversion.OrderID,
		"status":   conversion.Status,
	}).Debug("converting: conversão registrada")

	return conversion, nil
}

func (s *Service) commissionFor(ctx context.Context, brandID string, coupon *domain.Coupon, orderAmount float64) (float64, error) {
	if coupon.InfluencerID == nil {
		return 0, nil
	}

	influencer, err := s.influencerRepository.GetByID(ctx, brandID, *coupon.InfluencerID)
	if err != nil {
		return 0, fmt.Errorf("erro ao buscar influenciador: %w", err)
	}
	if influencer == nil {
		return 0, nil
	}

	return utils.RoundWithTwoDecimalPlace(orderAmount * influencer.CommissionRate / 100), nil
}
