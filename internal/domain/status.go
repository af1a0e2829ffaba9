package domain

type ConversionStatus string

const (
	StatusPending    ConversionStatus = "pending"
	StatusPaid       ConversionStatus = "paid"
	StatusConfirmed  ConversionStatus = "confirmed"
	StatusCompleted  ConversionStatus = "completed"
	StatusAuthorized ConversionStatus = "authorized"
	StatusVoided     ConversionStatus = "voided"
	StatusRefunded   ConversionStatus = "refunded"
	StatusCancelled  ConversionStatus = "cancelled"
)

var allStatuses = StatusSet{
	StatusPending, StatusPaid, StatusConfirmed, StatusCompleted,
	StatusAuthorized, StatusVoided, StatusRefunded, StatusCancelled,
}

func (s ConversionStatus) IsValid() bool {
	return allStatuses.Contains(s)
}

// StatusSet é um conjunto de status aceitos como receita em um ponto de agregação
type StatusSet []ConversionStatus

func (s StatusSet) Contains(status ConversionStatus) bool {
	for _, accepted := range s {
		if accepted == status {
			return true
		}
	}
	return false
}

// Strings converte o conjunto para o filtro IN da consulta
func (s StatusSet) Strings() []string {
	out := make([]string, len(s))
	for i, status := range s {
		out[i] = string(status)
	}
	return out
}

// Status aceitos por ponto de agregação. Os conjuntos divergem entre telas e
// unificar alteraria os totais históricos.
var (
	// RevenueStatusesSummary é usado nas métricas gerais da marca
	RevenueStatusesSummary = StatusSet{StatusPaid, StatusConfirmed, StatusCompleted, StatusAuthorized}

	// RevenueStatusesTopLists é usado nos rankings de cupons, classificações e UTM
	RevenueStatusesTopLists = StatusSet{StatusAuthorized, StatusPaid}

	// RevenueStatusesCouponUsage é usado nas métricas de uso por cupom e nos filtros de cupons
	RevenueStatusesCouponUsage = StatusSet{StatusPaid, StatusConfirmed, StatusCompleted}

	// RevenueStatusesDailySeries é usado na série de vendas diárias
	RevenueStatusesDailySeries = StatusSet{StatusPaid, StatusConfirmed, StatusCompleted}

	// PendingStatuses é usado no consolidado de pedidos pendentes
	PendingStatuses = StatusSet{StatusPending}
)
