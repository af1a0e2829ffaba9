package middleware

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/trackrcommerce/trackr-api/internal/domain"
	"github.com/trackrcommerce/trackr-api/pkg/apiErrors"
	"github.com/trackrcommerce/trackr-api/pkg/log"
)

const BrandIDParam = "brand_id"

type BrandAccessChecker interface {
	CanAccess(ctx context.Context, claims *domain.Claims, brandID string) error
}

// BrandAccess garante que o usuário pode consultar a marca do parâmetro :brand_id
func BrandAccess(checker BrandAccessChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
				return
			}

			brandID := httprouter.ParamsFromContext(r.Context()).ByName(BrandIDParam)

			if err := checker.CanAccess(r.Context(), claims, brandID); err != nil {
				log.ForContext(r.Context()).WithFields(log.Fields{
					"user_id":  claims.UserID,
					"brand_id": brandID,
					"error":    err.Error(),
				}).Warn("Acesso à marca negado")
				apiErrors.WriteEnvelope(w, nil, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
