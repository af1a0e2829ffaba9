package authenticating

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trackrcommerce/trackr-api/infrastructure/repository/mocks"
	"github.com/trackrcommerce/trackr-api/internal/config"
	"github.com/trackrcommerce/trackr-api/internal/domain"
	"github.com/trackrcommerce/trackr-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

const strongPassword = "Trackr@2024"

func newTestService(t *testing.T) (*Service, *mocks.MockUserRepository) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	return NewService(users, &config.Config{SecretKey: "segredo-de-teste"}), users
}

func hashed(t *testing.T, password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"senha forte", strongPassword, true},
		{"curta", "Tr@1", false},
		{"sem maiúscula", "trackr@2024", false},
		{"sem minúscula", "TRACKR@2024", false},
		{"sem número", "Trackr@abcd", false},
		{"sem símbolo", "Trackr2024", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePasswordStrength(tt.password)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrWeakPassword)
			assert.Equal(t, apiErrors.ErrInvalidRequest, apiErrors.CodeOf(err))
		})
	}
}

func TestGeneratePassword_SempreForte(t *testing.T) {
	for i := 0; i < 50; i++ {
		password, err := generatePassword(generatedPasswordSize)
		require.NoError(t, err)
		assert.Len(t, password, generatedPasswordSize)
		assert.NoError(t, ValidatePasswordStrength(password))
	}
}

func TestService_LoginUser(t *testing.T) {
	t.Run("gera token válido", func(t *testing.T) {
		svc, users := newTestService(t)
		users.EXPECT().GetUserByEmail(gomock.Any(), "ana@marca.com").Return(&domain.User{
			ID:           4,
			FullName:     "Ana Souza",
			Email:        "ana@marca.com",
			PasswordHash: hashed(t, strongPassword),
			Active:       true,
			RoleID:       domain.RoleBrandAdmin,
		}, nil)

		token, err := svc.LoginUser(context.Background(), " Ana@Marca.com ", strongPassword)
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, 4, claims.UserID)
		assert.Equal(t, "Ana Souza", claims.UserFullName)
		assert.Equal(t, domain.RoleBrandAdmin, claims.UserRoleID)
	})

	tests := []struct {
		name     string
		user     *domain.User
		password string
		expected error
	}{
		{"usuário inexistente", nil, strongPassword, ErrInvalidCredentials},
		{"usuário desativado", &domain.User{ID: 1, Active: false}, strongPassword, ErrUserDisabled},
		{"senha errada", &domain.User{ID: 1, Active: true}, "Outra@2024", ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, users := newTestService(t)
			if tt.user != nil {
				tt.user.PasswordHash = hashed(t, strongPassword)
			}
			users.EXPECT().GetUserByEmail(gomock.Any(), "ana@marca.com").Return(tt.user, nil)

			token, err := svc.LoginUser(context.Background(), "ana@marca.com", tt.password)

			assert.Empty(t, token)
			assert.ErrorIs(t, err, tt.expected)
			assert.True(t, IsCredentialsError(err))
		})
	}
}

func TestService_ValidateToken_Expirado(t *testing.T) {
	svc, _ := newTestService(t)
	svc.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }

	token, err := svc.generateJWT(&domain.User{ID: 1})
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_CreateUser(t *testing.T) {
	t.Run("cadastra desativado com perfil padrão", func(t *testing.T) {
		svc, users := newTestService(t)
		users.EXPECT().GetUserByEmail(gomock.Any(), "novo@marca.com").Return(nil, nil)
		users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user *domain.User) (*domain.User, error) {
				assert.False(t, user.Active)
				assert.Equal(t, domain.RoleUser, user.RoleID)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(strongPassword)))
				user.ID = 10
				return user, nil
			})

		created, err := svc.CreateUser(context.Background(), &domain.User{
			FullName:     "Novo Usuário",
			Email:        "Novo@Marca.com",
			PasswordHash: strongPassword,
		})

		require.NoError(t, err)
		assert.Equal(t, 10, created.ID)
		assert.Empty(t, created.PasswordHash)
	})

	t.Run("e-mail já cadastrado", func(t *testing.T) {
		svc, users := newTestService(t)
		users.EXPECT().GetUserByEmail(gomock.Any(), "ana@marca.com").Return(&domain.User{ID: 4}, nil)

		_, err := svc.CreateUser(context.Background(), &domain.User{FullName: "Ana", Email: "ana@marca.com", PasswordHash: strongPassword})

		assert.ErrorIs(t, err, ErrUserAlreadyExists)
		assert.Equal(t, "Este e-mail já está cadastrado", apiErrors.Localize(err))
	})

	t.Run("senha fraca não consulta o banco", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.CreateUser(context.Background(), &domain.User{FullName: "Ana", Email: "ana@marca.com", PasswordHash: "123"})

		assert.ErrorIs(t, err, ErrWeakPassword)
	})
}

func TestService_ResetPassword(t *testing.T) {
	t.Run("somente master", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.ResetPassword(context.Background(), &domain.Claims{UserID: 2, UserRoleID: domain.RoleBrandAdmin}, 5)

		assert.ErrorIs(t, err, ErrNoAdminPrivileges)
		assert.Equal(t, apiErrors.ErrInsufficientPrivilege, apiErrors.CodeOf(err))
	})

	t.Run("master redefine", func(t *testing.T) {
		svc, users := newTestService(t)
		users.EXPECT().GetUserByID(gomock.Any(), 5).Return(&domain.User{ID: 5}, nil)

		var saved string
		users.EXPECT().UpdateUser(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, user *domain.User) error {
			saved = user.PasswordHash
			return nil
		})

		password, err := svc.ResetPassword(context.Background(), &domain.Claims{UserID: 1, UserRoleID: domain.RoleMaster}, 5)

		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved), []byte(password)))
	})
}

func TestService_ChangePassword(t *testing.T) {
	tests := []struct {
		name     string
		current  string
		next     string
		expected error
	}{
		{"senha atual errada", "Errada@2024", "Nova@2024x", ErrWrongPassword},
		{"mesma senha", strongPassword, strongPassword, ErrSamePassword},
		{"nova senha fraca", strongPassword, "fraca", ErrWeakPassword},
		{"troca com sucesso", strongPassword, "Nova@2024x", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, users := newTestService(t)
			users.EXPECT().GetUserByID(gomock.Any(), 3).Return(&domain.User{ID: 3, PasswordHash: hashed(t, strongPassword)}, nil)
			if tt.expected == nil {
				users.EXPECT().UpdateUser(gomock.Any(), gomock.Any()).Return(nil)
			}

			err := svc.ChangePassword(context.Background(), 3, tt.current, tt.next)

			if tt.expected == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}
