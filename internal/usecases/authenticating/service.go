package authenticating

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/trackrcommerce/trackr-api/infrastructure/repository"
	"github.com/trackrcommerce/trackr-api/internal/config"
	"github.com/trackrcommerce/trackr-api/internal/domain"
	"github.com/trackrcommerce/trackr-api/pkg/apiErrors"
	"github.com/trackrcommerce/trackr-api/pkg/log"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenTTL              = 24 * time.Hour
	generatedPasswordSize = 12
)

type Authenticator interface {
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateUser(ctx context.Context, request *domain.UpdateUserRequest) error
	ListUser(ctx context.Context) ([]*domain.User, error)
	LoginUser(ctx context.Context, email, password string) (string, error)
	GetUserProfile(ctx context.Context, userID int) (*domain.User, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
	ResetPassword(ctx context.Context, requester *domain.Claims, targetUserID int) (string, error)
	ChangePassword(ctx context.Context, userID int, currentPassword, newPassword string) error
}

type Service struct {
	userRepo repository.UserRepository
	cfg      *config.Config
	now      func() time.Time
}

func NewService(userRepo repository.UserRepository, cfg *config.Config) *Service {
	return &Service{
		userRepo: userRepo,
		cfg:      cfg,
		now:      time.Now,
	}
}

func normalizeEmail(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "")
}

// CreateUser cadastra o usuário desativado; um master precisa liberar o acesso
func (s *Service) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user.Email == "" || strings.TrimSpace(user.FullName) == "" || user.PasswordHash == "" {
		return nil, newAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, 0, "nome, e-mail e senha são obrigatórios")
	}

	if err := ValidatePasswordStrength(user.PasswordHash); err != nil {
		return nil, err
	}

	user.Email = normalizeEmail(user.Email)
	user.FullName = strings.TrimSpace(user.FullName)

	existing, err := s.userRepo.GetUserByEmail(ctx, user.Email)
	if err != nil {
		return nil, newAuthError(err, apiErrors.ErrDatabaseOperation, 0, "erro ao consultar usuário")
	}
	if existing != nil {
		return nil, newAuthError(ErrUserAlreadyExists, apiErrors.ErrUserAlreadyExists, existing.ID, "")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.PasswordHash), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar hash da senha: %w", err)
	}

	if user.RoleID == 0 {
		user.RoleID = domain.RoleUser
	}
	user.PasswordHash = string(hashedPassword)
	user.Active = false

	created, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, newAuthError(err, apiErrors.ErrDatabaseOperation, 0, "erro ao criar usuário")
	}

	log.ForContext(ctx).WithField("user_id", created.ID).Info("authenticating: usuário cadastrado")

	created.PasswordHash = ""
	return created, nil
}

func (s *Service) UpdateUser(ctx context.Context, request *domain.UpdateUserRequest) error {
	if request.ID == 0 {
		return newAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, 0, "id do usuário")
	}

	user, err := s.getUser(ctx, request.ID)
	if err != nil {
		return err
	}

	if request.FullName != nil {
		user.FullName = strings.TrimSpace(*request.FullName)
	}
	if request.Email != nil {
		user.Email = normalizeEmail(*request.Email)
	}
	if request.Active != nil {
		user.Active = *request.Active
	}
	if request.RoleID != nil {
		user.RoleID = *request.RoleID
	}

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return newAuthError(err, apiErrors.ErrDatabaseOperation, user.ID, "erro ao atualizar usuário")
	}

	return nil
}

func (s *Service) ListUser(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userRepo.ListUser(ctx)
	if err != nil {
		return []*domain.User{}, fmt.Errorf("erro ao listar usuários: %w", err)
	}

	for _, user := range users {
		user.PasswordHash = ""
	}
	if users == nil {
		users = []*domain.User{}
	}

	return users, nil
}

func (s *Service) LoginUser(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", newAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, 0, "e-mail e senha são obrigatórios")
	}

	user, err := s.userRepo.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", newAuthError(err, apiErrors.ErrDatabaseOperation, 0, "erro ao consultar usuário")
	}
	if user == nil {
		return "", newAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, 0, "")
	}
	if !user.Active {
		return "", newAuthError(ErrUserDisabled, apiErrors.ErrUserDisabled, user.ID, "")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.ForContext(ctx).WithField("user_id", user.ID).Warn("authenticating: senha incorreta")
		return "", newAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, user.ID, "")
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return "", newAuthError(err, apiErrors.ErrInternalServer, user.ID, "erro ao gerar token")
	}

	return token, nil
}

func (s *Service) GetUserProfile(ctx context.Context, userID int) (*domain.User, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *Service) getUser(ctx context.Context, userID int) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, newAuthError(err, apiErrors.ErrDatabaseOperation, userID, "erro ao consultar usuário")
	}
	if user == nil {
		return nil, newAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, userID, "")
	}
	return user, nil
}

func (s *Service) generateJWT(user *domain.User) (string, error) {
	claims := domain.Claims{
		UserID:       user.ID,
		UserFullName: user.FullName,
		UserEmail:    user.Email,
		UserRoleID:   user.RoleID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(s.now()),
			ExpiresAt: jwt.NewNumericDate(s.now().Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.SecretKey))
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SecretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// ResetPassword gera uma senha nova para o usuário alvo. Só o master pode pedir.
func (s *Service) ResetPassword(ctx context.Context, requester *domain.Claims, targetUserID int) (string, error) {
	if !requester.IsMaster() {
		return "", newAuthError(ErrNoAdminPrivileges, apiErrors.ErrInsufficientPrivilege, 0, "")
	}

	target, err := s.getUser(ctx, targetUserID)
	if err != nil {
		return "", err
	}

	password, err := generatePassword(generatedPasswordSize)
	if err != nil {
		return "", err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("erro ao gerar hash da senha: %w", err)
	}

	target.PasswordHash = string(hashedPassword)
	if err := s.userRepo.UpdateUser(ctx, target); err != nil {
		return "", newAuthError(err, apiErrors.ErrDatabaseOperation, target.ID, "erro ao atualizar senha")
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"user_id":     requester.UserID,
		"user_target": target.ID,
	}).Info("authenticating: senha redefinida")

	return password, nil
}

func (s *Service) ChangePassword(ctx context.Context, userID int, currentPassword, newPassword string) error {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return newAuthError(ErrWrongPassword, apiErrors.ErrInvalidCredentials, userID, "")
	}
	if currentPassword == newPassword {
		return newAuthError(ErrSamePassword, apiErrors.ErrInvalidRequest, userID, "")
	}
	if err := ValidatePasswordStrength(newPassword); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("erro ao gerar hash da senha: %w", err)
	}

	user.PasswordHash = string(hashedPassword)
	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return newAuthError(err, apiErrors.ErrDatabaseOperation, userID, "erro ao atualizar senha")
	}

	return nil
}
