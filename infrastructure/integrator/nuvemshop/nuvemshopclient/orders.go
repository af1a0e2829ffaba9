package nuvemshopclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	nuvemshopdomain "github.com/trackrcommerce/trackr-api/infrastructure/integrator/nuvemshop/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const requestTimeout = 45 * time.Second

type OrdersParams struct {
	StoreID      string
	AccessToken  string
	CreatedAtMin time.Time
	Page         int
	PerPage      int
}

// GetOrders busca uma página de pedidos. A API responde 404 depois da última página,
// o que aqui vira uma lista vazia.
func (c *NuvemshopClient) GetOrders(ctx context.Context, params OrdersParams) ([]nuvemshopdomain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("erro ao analisar a URL base: %w", err)
	}
	endpoint.Path = path.Join(endpoint.Path, params.StoreID, "orders")

	query := endpoint.Query()
	query.Set("created_at_min", params.CreatedAtMin.UTC().Format(time.RFC3339))
	query.Set("page", strconv.Itoa(params.Page))
	query.Set("per_page", strconv.Itoa(params.PerPage))
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	req.Header.Set("Authentication", "bearer "+params.AccessToken)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return []nuvemshopdomain.Order{}, nil
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &RequestError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var orders []nuvemshopdomain.Order
	if err := json.NewDecoder(resp.Body).Decode(&orders); err != nil {
		return nil, fmt.Errorf("erro ao decodificar a resposta: %w", err)
	}

	return orders, nil
}

type RequestError struct {
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("requisição à Nuvemshop falhou com status %d: %s", e.StatusCode, e.Body)
}

// Unauthorized indica token revogado ou loja desconectada
func (e *RequestError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}
