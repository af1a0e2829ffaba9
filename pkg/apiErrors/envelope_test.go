package apiErrors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type codedError struct{}

func (codedError) Error() string     { return "falha ao consultar" }
func (codedError) ErrorCode() string { return ErrDatabaseOperation }

func TestLocalize(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "Sem erro", err: nil, expected: ""},
		{name: "Mensagem conhecida", err: errors.New("credenciais inválidas"), expected: "E-mail ou senha incorretos"},
		{name: "Mensagem conhecida embrulhada", err: fmt.Errorf("reporting: %w", errors.New("banco de dados não configurado")), expected: "Banco de dados não está configurado"},
		{name: "Timeout do contexto", err: fmt.Errorf("erro ao executar a query: %w", context.DeadlineExceeded), expected: "A consulta demorou demais. Tente novamente"},
		{name: "Mensagem desconhecida", err: errors.New("pq: relation does not exist"), expected: UnknownErrorMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Localize(tt.err))
		})
	}
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, "", CodeOf(nil))
	assert.Equal(t, ErrDatabaseOperation, CodeOf(fmt.Errorf("embrulhado: %w", codedError{})))
	assert.Equal(t, ErrInvalidDateRange, CodeOf(errors.New("período de datas inválido")))
	assert.Equal(t, ErrInternalServer, CodeOf(errors.New("qualquer coisa")))
}

func TestWriteEnvelope(t *testing.T) {
	t.Run("Sucesso responde 200 com error nulo", func(t *testing.T) {
		rec := httptest.NewRecorder()
		WriteEnvelope(rec, []string{"SAVE10"}, nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"data":["SAVE10"],"error":null}`, rec.Body.String())
	})

	t.Run("Erro mantém o valor vazio em data", func(t *testing.T) {
		rec := httptest.NewRecorder()
		WriteEnvelope(rec, []string{}, errors.New("período de datas inválido"))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"data":[],"error":"Período inválido. Verifique as datas selecionadas"}`, rec.Body.String())
	})
}
