package handler

import (
	"net/http"

	"github.com/trackrcommerce/trackr-api/internal/domain"
	"github.com/trackrcommerce/trackr-api/internal/usecases/branding"
	"github.com/trackrcommerce/trackr-api/pkg/apiErrors"
	"github.com/trackrcommerce/trackr-api/pkg/middleware"
)

type storeSecretRequest struct {
	AccessToken string `json:"access_token"`
}

// ListBrands devolve as marcas visíveis para o usuário logado
func ListBrands(service branding.BrandService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		brands, err := service.ListBrands(r.Context(), claims)
		if brands == nil {
			brands = []*domain.Brand{}
		}
		respond(w, brands, err)
	}
}

func StoreBrandSecret(service branding.BrandService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request storeSecretRequest
		if err := decodeBody(r, &request); err != nil {
			invalidBody(w, nil)
			return
		}

		if err := service.StoreSecret(r.Context(), brandID(r), request.AccessToken); err != nil {
			respond(w, nil, err)
			return
		}

		respond(w, map[string]string{"brand_id": brandID(r)}, nil)
	}
}
