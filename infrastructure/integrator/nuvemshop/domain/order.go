package nuvemshopdomain

import (
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/trackrcommerce/trackr-api/internal/domain"
)

// Valores de payment_status da API de pedidos
const (
	PaymentPending           = "pending"
	PaymentAuthorized        = "authorized"
	PaymentPaid              = "paid"
	PaymentPartiallyPaid     = "partially_paid"
	PaymentAbandoned         = "abandoned"
	PaymentRefunded          = "refunded"
	PaymentPartiallyRefunded = "partially_refunded"
	PaymentVoided            = "voided"

	OrderCancelled = "cancelled"
)

var paymentStatuses = map[string]domain.ConversionStatus{
	PaymentPending:           domain.StatusPending,
	PaymentPartiallyPaid:     domain.StatusPending,
	PaymentAuthorized:        domain.StatusAuthorized,
	PaymentPaid:              domain.StatusPaid,
	PaymentPartiallyRefunded: domain.StatusPaid,
	PaymentAbandoned:         domain.StatusCancelled,
	PaymentRefunded:          domain.StatusRefunded,
	PaymentVoided:            domain.StatusVoided,
}

type Order struct {
	ID            int64           `json:"id"`
	Number        int64           `json:"number"`
	Total         decimal.Decimal `json:"total"`
	Currency      string          `json:"currency"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"payment_status"`
	Coupons       []Coupon        `json:"coupon"`
	Customer      *Customer       `json:"customer"`
	LandingURL    string          `json:"landing_url"`
	CreatedAt     Timestamp       `json:"created_at"`
	PaidAt        *Timestamp      `json:"paid_at"`
}

type Coupon struct {
	ID    int64  `json:"id"`
	Code  string `json:"code"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

type Customer struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// ConversionStatus traduz o estado do pagamento. Pedido cancelado prevalece sobre o pagamento.
func (o *Order) ConversionStatus() domain.ConversionStatus {
	if o.Status == OrderCancelled {
		return domain.StatusCancelled
	}
	if status, ok := paymentStatuses[o.PaymentStatus]; ok {
		return status
	}
	return domain.StatusPending
}

// FirstCouponCode devolve o código do primeiro cupom aplicado, em maiúsculas
func (o *Order) FirstCouponCode() string {
	for _, coupon := range o.Coupons {
		if code := strings.TrimSpace(coupon.Code); code != "" {
			return strings.ToUpper(code)
		}
	}
	return ""
}

// UTMSource lê o utm_source da URL de entrada da loja
func (o *Order) UTMSource() string {
	if o.LandingURL == "" {
		return ""
	}

	landing, err := url.Parse(o.LandingURL)
	if err != nil {
		return ""
	}

	return strings.ToLower(strings.TrimSpace(landing.Query().Get("utm_source")))
}

// SaleDate usa a data de pagamento quando existe
func (o *Order) SaleDate() time.Time {
	if o.PaidAt != nil && !o.PaidAt.IsZero() {
		return o.PaidAt.Time
	}
	return o.CreatedAt.Time
}
