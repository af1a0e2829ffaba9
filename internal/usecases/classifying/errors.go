package classifying

import (
	"errors"

	"github.com/trackrcommerce/trackr-api/infrastructure/database/postgres"
)

var (
	ErrStoreNotConfigured     = postgres.ErrNotConfigured
	ErrBrandIDRequired        = errors.New("marca obrigatória")
	ErrNameRequired           = errors.New("nome obrigatório")
	ErrClassificationRequired = errors.New("classificação obrigatória")
	ErrClassificationNotFound = errors.New("classificação não encontrada")
	ErrClassificationInactive = errors.New("classificação inativa")
	ErrCouponNotFound         = errors.New("cupom não encontrado")
)
