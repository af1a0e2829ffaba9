package reporting

import (
	"context"
	"errors"
	"fmt"

	"github.com/trackrcommerce/trackr-api/infrastructure/database/postgres"
	"github.com/trackrcommerce/trackr-api/internal/domain"
	"github.com/trackrcommerce/trackr-api/pkg/apiErrors"
)

var (
	ErrStoreNotConfigured = postgres.ErrNotConfigured
	ErrInvalidDateRange   = domain.ErrInvalidDateRange
	ErrBrandIDRequired    = errors.New("marca obrigatória")
)

// ReportError é a falha de um card do dashboard, com o código usado na resposta HTTP
type ReportError struct {
	Err     error
	Code    string
	BrandID string
	Details string
}

func (e *ReportError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Details, e.Err.Error())
	}
	return e.Err.Error()
}

func (e *ReportError) Unwrap() error {
	return e.Err
}

func (e *ReportError) ErrorCode() string {
	return e.Code
}

func newReportError(err error, brandID, details string) *ReportError {
	return &ReportError{
		Err:     err,
		Code:    codeFor(err),
		BrandID: brandID,
		Details: details,
	}
}

func codeFor(err error) string {
	switch {
	case errors.Is(err, ErrStoreNotConfigured):
		return apiErrors.ErrStoreNotConfigured
	case errors.Is(err, ErrBrandIDRequired):
		return apiErrors.ErrMissingRequiredData
	case errors.Is(err, ErrInvalidDateRange):
		return apiErrors.ErrInvalidDateRange
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return apiErrors.ErrTimeout
	default:
		return apiErrors.ErrDatabaseOperation
	}
}
