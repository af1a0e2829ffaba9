package converting

import (
	"errors"

	"github.com/trackrcommerce/trackr-api/infrastructure/database/postgres"
)

var (
	ErrStoreNotConfigured = postgres.ErrNotConfigured
	ErrBrandIDRequired    = errors.New("marca obrigatória")
	ErrOrderIDRequired    = errors.New("pedido obrigatório")
	ErrInvalidOrderAmount = errors.New("valor do pedido inválido")
	ErrInvalidStatus      = errors.New("status inválido")
	ErrCouponNotFound     = errors.New("cupom não encontrado")
	ErrInfluencerNotFound = errors.New("influenciador não encontrado")
)
