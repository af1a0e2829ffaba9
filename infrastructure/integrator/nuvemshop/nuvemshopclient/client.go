package nuvemshopclient

import (
	"context"
	"net/http"
	"time"

	nuvemshopdomain "github.com/trackrcommerce/trackr-api/infrastructure/integrator/nuvemshop/domain"
	"github.com/trackrcommerce/trackr-api/internal/config"
)

type Client interface {
	GetOrders(ctx context.Context, params OrdersParams) ([]nuvemshopdomain.Order, error)
}

type NuvemshopClient struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

func NewClient(cfg config.Nuvemshop) *NuvemshopClient {
	return &NuvemshopClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:   cfg.URL,
		userAgent: cfg.UserAgent,
	}
}
