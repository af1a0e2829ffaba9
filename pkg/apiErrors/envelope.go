package apiErrors

import (
	"errors"
	"net/http"
)

// UnknownErrorMessage é exibida quando o erro não tem tradução conhecida
const UnknownErrorMessage = "Erro desconhecido. Por favor, tente novamente."

type knownError struct {
	code    string
	message string
}

// knownErrors traduz as mensagens de erro conhecidas para o texto exibido no dashboard
var knownErrors = map[string]knownError{
	"banco de dados não configurado":                  {ErrStoreNotConfigured, "Banco de dados não está configurado"},
	"período de datas inválido":                       {ErrInvalidDateRange, "Período inválido. Verifique as datas selecionadas"},
	"corpo da requisição inválido":                    {ErrInvalidRequest, "Formato de requisição inválido"},
	"credenciais inválidas":                           {ErrInvalidCredentials, "E-mail ou senha incorretos"},
	"usuário desativado":                              {ErrUserDisabled, "Usuário desativado"},
	"usuário não encontrado":                          {ErrUserNotFound, "Usuário não encontrado"},
	"usuário já existe":                               {ErrUserAlreadyExists, "Este e-mail já está cadastrado"},
	"dados obrigatórios ausentes":                     {ErrMissingRequiredData, "Preencha todos os campos obrigatórios"},
	"token inválido":                                  {ErrInvalidToken, "Sessão expirada. Faça login novamente"},
	"senha fraca":                                     {ErrInvalidRequest, "A senha deve ter ao menos 8 caracteres com maiúscula, minúscula, número e símbolo"},
	"senha atual incorreta":                           {ErrInvalidCredentials, "Senha atual incorreta"},
	"nova senha deve ser diferente da atual":          {ErrInvalidRequest, "A nova senha deve ser diferente da atual"},
	"apenas administradores podem realizar esta ação": {ErrInsufficientPrivilege, "Apenas administradores podem realizar esta ação"},
	"marca obrigatória":                               {ErrMissingRequiredData, "Selecione uma marca"},
	"marca não encontrada":                            {ErrResourceNotFound, "Marca não encontrada"},
	"acesso negado à marca":                           {ErrBrandAccessDenied, "Você não tem acesso a esta marca"},
	"token da loja obrigatório":                       {ErrMissingRequiredData, "Informe o token de acesso da loja"},
	"cupom não encontrado":                            {ErrResourceNotFound, "Cupom não encontrado"},
	"cupom já cadastrado":                             {ErrConflict, "Já existe um cupom com este código"},
	"tipo de desconto inválido":                       {ErrInvalidFormat, "Tipo de desconto inválido"},
	"influenciador não encontrado":                    {ErrResourceNotFound, "Influenciador não encontrado"},
	"valor de desconto inválido":                      {ErrInvalidFormat, "Valor de desconto inválido"},
	"classificação obrigatória":                       {ErrMissingRequiredData, "Selecione uma classificação antes de salvar"},
	"classificação não encontrada":                    {ErrResourceNotFound, "Classificação não encontrada"},
	"classificação inativa":                           {ErrInvalidRequest, "Esta classificação foi excluída"},
	"nome obrigatório":                                {ErrMissingRequiredData, "Informe o nome"},
	"pedido obrigatório":                              {ErrMissingRequiredData, "Informe o número do pedido"},
	"valor do pedido inválido":                        {ErrInvalidFormat, "O valor do pedido não pode ser negativo"},
	"status inválido":                                 {ErrInvalidFormat, "Status do pedido inválido"},
	"context deadline exceeded":                       {ErrTimeout, "A consulta demorou demais. Tente novamente"},
	"context canceled":                                {ErrTimeout, "A consulta foi cancelada"},
}

// Envelope é o formato de resposta de todos os endpoints de dados.
// Em caso de erro Data continua preenchido com o valor vazio do tipo.
type Envelope struct {
	Data  any     `json:"data"`
	Error *string `json:"error"`
}

func NewEnvelope(data any, err error) Envelope {
	envelope := Envelope{Data: data}
	if err != nil {
		message := Localize(err)
		envelope.Error = &message
	}
	return envelope
}

// WriteEnvelope responde {data, error}; o status vem do código do erro
func WriteEnvelope(w http.ResponseWriter, data any, err error) {
	status := http.StatusOK
	if err != nil {
		status = StatusFor(CodeOf(err))
	}

	WriteJSON(w, status, NewEnvelope(data, err))
}

// Localize converte o erro no texto exibido ao usuário
func Localize(err error) string {
	if err == nil {
		return ""
	}

	if known, ok := lookup(err); ok {
		return known.message
	}

	return UnknownErrorMessage
}

// lookup percorre a cadeia de erros procurando uma mensagem conhecida
func lookup(err error) (knownError, bool) {
	for current := err; current != nil; current = errors.Unwrap(current) {
		if known, ok := knownErrors[current.Error()]; ok {
			return known, true
		}
	}
	return knownError{}, false
}
