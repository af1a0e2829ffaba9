// Package branding resolve quais marcas cada usuário enxerga e guarda o token da loja
package branding

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/trackrcommerce/trackr-api/infrastructure/repository"
	"github.com/trackrcommerce/trackr-api/internal/domain"
	"github.com/trackrcommerce/trackr-api/pkg/log"
)

type BrandService interface {
	ListBrands(ctx context.Context, claims *domain.Claims) ([]*domain.Brand, error)
	CanAccess(ctx context.Context, claims *domain.Claims, brandID string) error
	StoreSecret(ctx context.Context, brandID, accessToken string) error
}

type Service struct {
	brandRepository repository.BrandRepository
}

func NewService(brandRepo repository.BrandRepository) *Service {
	return &Service{brandRepository: brandRepo}
}

// ListBrands devolve todas as marcas para o master e só as próprias para os demais
func (s *Service) ListBrands(ctx context.Context, claims *domain.Claims) ([]*domain.Brand, error) {
	if claims == nil {
		return []*domain.Brand{}, ErrBrandAccessDenied
	}

	var (
		brands []*domain.Brand
		err    error
	)
	if claims.IsMaster() {
		brands, err = s.brandRepository.ListAll(ctx)
	} else {
		brands, err = s.brandRepository.ListByOwner(ctx, claims.UserID)
	}
	if err != nil {
		return []*domain.Brand{}, fmt.Errorf("erro ao listar marcas: %w", err)
	}
	if brands == nil {
		brands = []*domain.Brand{}
	}

	return brands, nil
}

func (s *Service) CanAccess(ctx context.Context, claims *domain.Claims, brandID string) error {
	if brandID == "" {
		return ErrBrandIDRequired
	}
	if claims == nil {
		return ErrBrandAccessDenied
	}

	brand, err := s.brandRepository.GetByID(ctx, brandID)
	if err != nil {
		return fmt.Errorf("erro ao buscar marca: %w", err)
	}
	if brand == nil {
		return ErrBrandNotFound
	}

	if claims.IsMaster() || brand.OwnerID == claims.UserID {
		return nil
	}

	return ErrBrandAccessDenied
}

func (s *Service) StoreSecret(ctx context.Context, brandID, accessToken string) error {
	if brandID == "" {
		return ErrBrandIDRequired
	}

	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return ErrAccessTokenMissing
	}

	secret := &domain.BrandSecret{
		BrandID:     brandID,
		AccessToken: accessToken,
		UpdatedAt:   time.Now(),
	}
	if err := s.brandRepository.StoreSecret(ctx, secret); err != nil {
		return fmt.Errorf("erro ao salvar token da loja: %w", err)
	}

	log.ForContext(ctx).WithField("brand_id", brandID).Info("branding: token da loja atualizado")

	return nil
}
