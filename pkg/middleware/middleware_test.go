package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/trackrcommerce/trackr-api/internal/domain"
)

type fakeValidator struct {
	claims *domain.Claims
	err    error
}

func (f fakeValidator) ValidateToken(string) (*domain.Claims, error) {
	return f.claims, f.err
}

type fakeChecker struct {
	err error
}

func (f fakeChecker) CanAccess(context.Context, *domain.Claims, string) error {
	return f.err
}

type fakeObserver struct {
	route  string
	status int
}

func (f *fakeObserver) ObserveHTTP(_, route string, status int, _ time.Duration) {
	f.route = route
	f.status = status
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func withClaims(r *http.Request, roleID int) *http.Request {
	claims := &domain.Claims{UserID: 7, UserRoleID: roleID}
	return r.WithContext(context.WithValue(r.Context(), ContextKeyUser, claims))
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		header     string
		validator  fakeValidator
		wantStatus int
	}{
		{"rota pública não exige token", "/metrics", "", fakeValidator{}, http.StatusNoContent},
		{"sem header", "/v1/me", "", fakeValidator{}, http.StatusUnauthorized},
		{"sem prefixo Bearer", "/v1/me", "abc", fakeValidator{}, http.StatusUnauthorized},
		{"token inválido", "/v1/me", "Bearer abc", fakeValidator{err: errors.New("expirado")}, http.StatusUnauthorized},
		{"token válido", "/v1/me", "Bearer abc", fakeValidator{claims: &domain.Claims{UserID: 1}}, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(tt.validator)(okHandler).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRoleMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		middleware func(http.Handler) http.Handler
		roleID     int
		wantStatus int
	}{
		{"master acessa rota de master", MasterOnly(), domain.RoleMaster, http.StatusNoContent},
		{"admin de marca não acessa rota de master", MasterOnly(), domain.RoleBrandAdmin, http.StatusForbidden},
		{"admin de marca escreve", MasterOrBrandAdmin(), domain.RoleBrandAdmin, http.StatusNoContent},
		{"usuário comum não escreve", MasterOrBrandAdmin(), domain.RoleUser, http.StatusForbidden},
		{"usuário comum lê", AllRoles(), domain.RoleUser, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := withClaims(httptest.NewRequest(http.MethodGet, "/", nil), tt.roleID)
			rec := httptest.NewRecorder()

			tt.middleware(okHandler).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestBrandAccess(t *testing.T) {
	t.Run("acesso permitido", func(t *testing.T) {
		router := httprouter.New()
		router.Handler(http.MethodGet, "/v1/brands/:brand_id/metrics", BrandAccess(fakeChecker{})(okHandler))

		req := withClaims(httptest.NewRequest(http.MethodGet, "/v1/brands/b1/metrics", nil), domain.RoleUser)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("acesso negado responde envelope", func(t *testing.T) {
		router := httprouter.New()
		router.Handler(http.MethodGet, "/v1/brands/:brand_id/metrics",
			BrandAccess(fakeChecker{err: errors.New("acesso negado à marca")})(okHandler))

		req := withClaims(httptest.NewRequest(http.MethodGet, "/v1/brands/b2/metrics", nil), domain.RoleUser)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.JSONEq(t, `{"data":null,"error":"Você não tem acesso a esta marca"}`, rec.Body.String())
	})
}

func TestMetrics(t *testing.T) {
	observer := &fakeObserver{}
	rec := httptest.NewRecorder()

	Metrics(observer, "/v1/brands/:brand_id/coupons")(okHandler).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/brands/b1/coupons", nil))

	assert.Equal(t, "/v1/brands/:brand_id/coupons", observer.route)
	assert.Equal(t, http.StatusNoContent, observer.status)
}

func TestCors(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/v1/brands", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()

	Cors([]string{"http://localhost:3000"})(okHandler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
