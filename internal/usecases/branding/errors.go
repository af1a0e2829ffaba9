package branding

import "errors"

var (
	ErrBrandIDRequired    = errors.New("marca obrigatória")
	ErrBrandNotFound      = errors.New("marca não encontrada")
	ErrBrandAccessDenied  = errors.New("acesso negado à marca")
	ErrAccessTokenMissing = errors.New("token da loja obrigatório")
)
