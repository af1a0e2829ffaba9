package handler

import (
	"net/http"
	"strconv"

	"github.com/pkg/errors"
	"github.com/trackrcommerce/trackr-api/internal/usecases/authenticating"
	"github.com/trackrcommerce/trackr-api/pkg/apiErrors"
	"github.com/trackrcommerce/trackr-api/pkg/log"
	"github.com/trackrcommerce/trackr-api/pkg/middleware"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type ResetPasswordResponse struct {
	Password string `json:"password"`
}

// authFailure registra e responde erros de autenticação.
// Credenciais erradas ficam em Warn; o restante é Error.
func authFailure(w http.ResponseWriter, r *http.Request, action string, err error) {
	fields := log.Fields{"action": action, "error": err.Error()}

	var authErr *authenticating.AuthError
	if errors.As(err, &authErr) && authErr.UserID != 0 {
		fields["user_id"] = authErr.UserID
	}

	logger := log.ForContext(r.Context()).WithFields(fields)
	if authenticating.IsCredentialsError(err) {
		logger.Warn("authenticating: falha de autenticação")
	} else {
		logger.Error("authenticating: erro ao processar requisição")
	}

	respond(w, nil, err)
}

func userIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(pathParam(r, "id"))
	if err != nil || id <= 0 {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID do usuário inválido", nil)
		return 0, false
	}
	return id, true
}

func Login(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request LoginRequest
		if err := decodeBody(r, &request); err != nil {
			invalidBody(w, nil)
			return
		}

		token, err := service.LoginUser(r.Context(), request.Email, request.Password)
		if err != nil {
			authFailure(w, r, "login", err)
			return
		}

		respond(w, map[string]string{"token": token}, nil)
	}
}

// GetMe retorna o perfil do usuário do token
func GetMe(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		user, err := service.GetUserProfile(r.Context(), claims.UserID)
		if err != nil {
			authFailure(w, r, "me", err)
			return
		}

		respond(w, user, nil)
	}
}

// ChangePassword só altera a senha do próprio usuário
func ChangePassword(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		targetUserID, ok := userIDParam(w, r)
		if !ok {
			return
		}

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		if claims.UserID != targetUserID {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Não autorizado a alterar a senha de outro usuário", nil)
			return
		}

		var request ChangePasswordRequest
		if err := decodeBody(r, &request); err != nil {
			invalidBody(w, nil)
			return
		}

		err := service.ChangePassword(r.Context(), targetUserID, request.CurrentPassword, request.NewPassword)
		if err != nil {
			authFailure(w, r, "change-password", err)
			return
		}

		respond(w, map[string]int{"id": targetUserID}, nil)
	}
}

// ResetPassword gera uma senha forte para outro usuário. Apenas master.
func ResetPassword(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		targetUserID, ok := userIDParam(w, r)
		if !ok {
			return
		}

		claims, _ := middleware.ClaimsFromContext(r.Context())

		password, err := service.ResetPassword(r.Context(), claims, targetUserID)
		if err != nil {
			authFailure(w, r, "reset-password", err)
			return
		}

		respond(w, ResetPasswordResponse{Password: password}, nil)
	}
}
