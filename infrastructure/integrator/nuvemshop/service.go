// Package nuvemshop busca os pedidos das lojas conectadas para a sincronização de conversões
package nuvemshop

import (
	"context"
	"fmt"
	"time"

	nuvemshopdomain "github.com/trackrcommerce/trackr-api/infrastructure/integrator/nuvemshop/domain"
	"github.com/trackrcommerce/trackr-api/infrastructure/integrator/nuvemshop/nuvemshopclient"
	"github.com/trackrcommerce/trackr-api/internal/config"
)

const (
	defaultPageSize = 200
	maxPages        = 50
)

type StoreCredentials struct {
	StoreID     string
	AccessToken string
}

type Integrator interface {
	ListOrders(ctx context.Context, store StoreCredentials, since time.Time) ([]nuvemshopdomain.Order, error)
}

type Service struct {
	client   nuvemshopclient.Client
	pageSize int
	delay    time.Duration
}

func New(cfg *config.Config, client nuvemshopclient.Client) *Service {
	pageSize := cfg.Nuvemshop.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	return &Service{
		client:   client,
		pageSize: pageSize,
		delay:    time.Duration(cfg.OrderSync.RequestDelaySeconds) * time.Second,
	}
}

// ListOrders percorre as páginas até a API devolver uma página incompleta
func (s *Service) ListOrders(ctx context.Context, store StoreCredentials, since time.Time) ([]nuvemshopdomain.Order, error) {
	orders := make([]nuvemshopdomain.Order, 0)

	for page := 1; page <= maxPages; page++ {
		batch, err := s.client.GetOrders(ctx, nuvemshopclient.OrdersParams{
			StoreID:      store.StoreID,
			AccessToken:  store.AccessToken,
			CreatedAtMin: since,
			Page:         page,
			PerPage:      s.pageSize,
		})
		if err != nil {
			return orders, fmt.Errorf("erro ao buscar pedidos da loja %s (página %d): %w", store.StoreID, page, err)
		}

		orders = append(orders, batch...)
		if len(batch) < s.pageSize {
			return orders, nil
		}

		if s.delay > 0 {
			select {
			case <-ctx.Done():
				return orders, ctx.Err()
			case <-time.After(s.delay):
			}
		}
	}

	return orders, nil
}
