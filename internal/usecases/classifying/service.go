// Package classifying mantém as classificações de cupons de cada marca
package classifying

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/trackrcommerce/trackr-api/infrastructure/repository"
	"github.com/trackrcommerce/trackr-api/internal/domain"
	"github.com/trackrcommerce/trackr-api/pkg/log"
)

type ClassificationService interface {
	ListActive(ctx context.Context, brandID string) ([]*domain.CouponClassification, error)
	Get(ctx context.Context, brandID, classificationID string) (*domain.CouponClassification, error)
	Create(ctx context.Context, brandID string, request *domain.ClassificationRequest) (*domain.CouponClassification, error)
	Update(ctx context.Context, brandID, classificationID string, request *domain.ClassificationRequest) (*domain.CouponClassification, error)
	Delete(ctx context.Context, brandID, classificationID string) error
	AssignToCoupon(ctx context.Context, brandID, couponID, classificationID string) error
}

type Service struct {
	classificationRepository repository.ClassificationRepository
	couponRepository         repository.CouponRepository
}

func NewService(classificationRepo repository.ClassificationRepository, couponRepo repository.CouponRepository) *Service {
	return &Service{
		classificationRepository: classificationRepo,
		couponRepository:         couponRepo,
	}
}

func (s *Service) ListActive(ctx context.Context, brandID string) ([]*domain.CouponClassification, error) {
	if brandID == "" {
		return []*domain.CouponClassification{}, ErrBrandIDRequired
	}

	active := true
	classifications, err := s.classificationRepository.SelectClassifications(ctx, brandID, &active)
	if err != nil {
		return []*domain.CouponClassification{}, fmt.Errorf("erro ao listar classificações: %w", err)
	}
	if classifications == nil {
		classifications = []*domain.CouponClassification{}
	}

	return classifications, nil
}

// Get busca direto pelo id, inclusive classificações desativadas
func (s *Service) Get(ctx context.Context, brandID, classificationID string) (*domain.CouponClassification, error) {
	if brandID == "" {
		return nil, ErrBrandIDRequired
	}

	classification, err := s.classificationRepository.GetByID(ctx, brandID, classificationID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar classificação: %w", err)
	}
	if classification == nil {
		return nil, ErrClassificationNotFound
	}

	return classification, nil
}

func normalize(request *domain.ClassificationRequest) (*domain.ClassificationRequest, error) {
	name := strings.TrimSpace(request.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	color := strings.TrimSpace(request.Color)
	if color == "" {
		color = domain.DefaultClassificationColor
	}

	return &domain.ClassificationRequest{Name: name, Description: request.Description, Color: color}, nil
}

func (s *Service) Create(ctx context.Context, brandID string, request *domain.ClassificationRequest) (*domain.CouponClassification, error) {
	if brandID == "" {
		return nil, ErrBrandIDRequired
	}

	normalized, err := normalize(request)
	if err != nil {
		return nil, err
	}

	classification := &domain.CouponClassification{
		BrandID:     brandID,
		Name:        normalized.Name,
		Description: normalized.Description,
		Color:       normalized.Color,
	}

	if err := s.classificationRepository.Upsert(ctx, classification); err != nil {
		return nil, fmt.Errorf("erro ao criar classificação: %w", err)
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"brand_id":          brandID,
		"classification_id": classification.ID,
	}).Info("classifying: classificação criada")

	return classification, nil
}

func (s *Service) Update(ctx context.Context, brandID, classificationID string, request *domain.ClassificationRequest) (*domain.CouponClassification, error) {
	if brandID == "" {
		return nil, ErrBrandIDRequired
	}
	if classificationID == "" {
		return nil, ErrClassificationRequired
	}

	normalized, err := normalize(request)
	if err != nil {
		return nil, err
	}

	classification := &domain.CouponClassification{
		ID:          classificationID,
		BrandID:     brandID,
		Name:        normalized.Name,
		Description: normalized.Description,
		Color:       normalized.Color,
	}

	if err := s.classificationRepository.Upsert(ctx, classification); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClassificationNotFound
		}
		return nil, fmt.Errorf("erro ao atualizar classificação: %w", err)
	}

	return classification, nil
}

// Delete desativa a classificação. Cupons que já a usam mantêm a referência.
func (s *Service) Delete(ctx context.Context, brandID, classificationID string) error {
	if brandID == "" {
		return ErrBrandIDRequired
	}
	if classificationID == "" {
		return ErrClassificationRequired
	}

	if err := s.classificationRepository.SoftDelete(ctx, brandID, classificationID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrClassificationNotFound
		}
		return fmt.Errorf("erro ao excluir classificação: %w", err)
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"brand_id":          brandID,
		"classification_id": classificationID,
	}).Info("classifying: classificação desativada")

	return nil
}

// AssignToCoupon valida tudo antes de gravar: a classificação precisa existir na
// mesma marca e estar ativa
func (s *Service) AssignToCoupon(ctx context.Context, brandID, couponID, classificationID string) error {
	if brandID == "" {
		return ErrBrandIDRequired
	}
	if strings.TrimSpace(classificationID) == "" {
		return ErrClassificationRequired
	}

	classification, err := s.classificationRepository.GetByID(ctx, brandID, classificationID)
	if err != nil {
		return fmt.Errorf("erro ao buscar classificação: %w", err)
	}
	if classification == nil || classification.BrandID != brandID {
		return ErrClassificationNotFound
	}
	if !classification.IsActive {
		return ErrClassificationInactive
	}

	if err := s.couponRepository.AssignClassification(ctx, brandID, couponID, classificationID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCouponNotFound
		}
		if errors.Is(err, repository.ErrClassificationUnavailable) {
			return ErrClassificationInactive
		}
		return fmt.Errorf("erro ao classificar cupom: %w", err)
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"brand_id":          brandID,
		"coupon_id":         couponID,
		"classification_id": classificationID,
	}).Info("classifying: cupom classificado")

	return nil
}
