package branding

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trackrcommerce/trackr-api/infrastructure/repository/mocks"
	"github.com/trackrcommerce/trackr-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func newTestService(t *testing.T) (*Service, *mocks.MockBrandRepository) {
	ctrl := gomock.NewController(t)
	brands := mocks.NewMockBrandRepository(ctrl)
	return NewService(brands), brands
}

func TestService_ListBrands(t *testing.T) {
	t.Run("master vê todas", func(t *testing.T) {
		svc, brands := newTestService(t)
		brands.EXPECT().ListAll(gomock.Any()).Return([]*domain.Brand{{ID: "b1"}, {ID: "b2"}}, nil)

		result, err := svc.ListBrands(context.Background(), &domain.Claims{UserID: 1, UserRoleID: domain.RoleMaster})

		require.NoError(t, err)
		assert.Len(t, result, 2)
	})

	t.Run("demais perfis veem as próprias", func(t *testing.T) {
		svc, brands := newTestService(t)
		brands.EXPECT().ListByOwner(gomock.Any(), 7).Return(nil, nil)

		result, err := svc.ListBrands(context.Background(), &domain.Claims{UserID: 7, UserRoleID: domain.RoleBrandAdmin})

		require.NoError(t, err)
		assert.NotNil(t, result)
		assert.Empty(t, result)
	})

	t.Run("erro do banco devolve lista vazia", func(t *testing.T) {
		svc, brands := newTestService(t)
		brands.EXPECT().ListByOwner(gomock.Any(), 7).Return(nil, errors.New("falhou"))

		result, err := svc.ListBrands(context.Background(), &domain.Claims{UserID: 7, UserRoleID: domain.RoleUser})

		assert.Error(t, err)
		assert.NotNil(t, result)
	})
}

func TestService_CanAccess(t *testing.T) {
	owned := &domain.Brand{ID: "b1", OwnerID: 7}

	tests := []struct {
		name     string
		claims   *domain.Claims
		brand    *domain.Brand
		expected error
	}{
		{"master acessa qualquer marca", &domain.Claims{UserID: 1, UserRoleID: domain.RoleMaster}, owned, nil},
		{"dono acessa", &domain.Claims{UserID: 7, UserRoleID: domain.RoleUser}, owned, nil},
		{"outro usuário é negado", &domain.Claims{UserID: 8, UserRoleID: domain.RoleBrandAdmin}, owned, ErrBrandAccessDenied},
		{"marca inexistente", &domain.Claims{UserID: 1, UserRoleID: domain.RoleMaster}, nil, ErrBrandNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, brands := newTestService(t)
			brands.EXPECT().GetByID(gomock.Any(), "b1").Return(tt.brand, nil)

			err := svc.CanAccess(context.Background(), tt.claims, "b1")

			if tt.expected == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.expected)
		})
	}

	t.Run("sem marca", func(t *testing.T) {
		svc, _ := newTestService(t)
		assert.ErrorIs(t, svc.CanAccess(context.Background(), &domain.Claims{}, ""), ErrBrandIDRequired)
	})
}

func TestService_StoreSecret(t *testing.T) {
	t.Run("grava token aparado", func(t *testing.T) {
		svc, brands := newTestService(t)
		brands.EXPECT().StoreSecret(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, secret *domain.BrandSecret) error {
				assert.Equal(t, "b1", secret.BrandID)
				assert.Equal(t, "abc123", secret.AccessToken)
				return nil
			})

		assert.NoError(t, svc.StoreSecret(context.Background(), "b1", " abc123 "))
	})

	t.Run("token vazio não grava", func(t *testing.T) {
		svc, _ := newTestService(t)
		assert.ErrorIs(t, svc.StoreSecret(context.Background(), "b1", "  "), ErrAccessTokenMissing)
	})
}
