package couponing

import (
	"errors"

	"github.com/trackrcommerce/trackr-api/infrastructure/database/postgres"
	"github.com/trackrcommerce/trackr-api/infrastructure/repository"
)

var (
	ErrStoreNotConfigured   = postgres.ErrNotConfigured
	ErrDuplicateCoupon      = repository.ErrDuplicateCoupon
	ErrBrandIDRequired      = errors.New("marca obrigatória")
	ErrCouponNotFound       = errors.New("cupom não encontrado")
	ErrInfluencerNotFound   = errors.New("influenciador não encontrado")
	ErrInvalidDiscountType  = errors.New("tipo de desconto inválido")
	ErrInvalidDiscountValue = errors.New("valor de desconto inválido")
)
