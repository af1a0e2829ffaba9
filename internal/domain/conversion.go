package domain

import "time"

// NoCouponCode é o código exibido para conversões sem cupom
const NoCouponCode = "N/A"

// Conversion é um pedido registrado para a marca, opcionalmente atribuído a um cupom.
// CouponCode e CouponClassificationID vêm do join com coupons na leitura.
type Conversion struct {
	ID                     string           `json:"id"`
	BrandID                string           `json:"brand_id"`
	OrderID                string           `json:"order_id"`
	OrderNumber            *string          `json:"order_number"`
	CouponID               *string          `json:"coupon_id"`
	CouponCode             *string          `json:"coupon_code"`
	CouponClassificationID *string          `json:"coupon_classification_id"`
	OrderAmount            float64          `json:"order_amount"`
	CommissionAmount       float64          `json:"commission_amount"`
	Status                 ConversionStatus `json:"status"`
	OrderIsReal            bool             `json:"order_is_real"`
	SaleDate               time.Time        `json:"sale_date"`
	CustomerID             *string          `json:"customer_id"`
	CustomerEmail          *string          `json:"customer_email"`
	Metadata               map[string]any   `json:"metadata"`
}

// IsRealizedRevenue indica se a conversão conta como receita para o conjunto de status informado
func (c *Conversion) IsRealizedRevenue(accepted StatusSet) bool {
	return c.OrderIsReal && accepted.Contains(c.Status)
}

// DisplayCouponCode retorna o código do cupom ou "N/A"
func (c *Conversion) DisplayCouponCode() string {
	if c.CouponCode == nil || *c.CouponCode == "" {
		return NoCouponCode
	}
	return *c.CouponCode
}

// UTMSource retorna o utm_source gravado nos metadados do pedido
func (c *Conversion) UTMSource() string {
	if c.Metadata == nil {
		return ""
	}
	source, _ := c.Metadata[MetadataUTMSource].(string)
	return source
}

const (
	MetadataUTMSource = "utm_source"
	DirectUTMSource   = "direto"
)

type ConversionPage struct {
	Conversions []*Conversion `json:"conversions"`
	TotalCount  int           `json:"total_count"`
}

type ConversionFilterValues struct {
	OrderIDs    []string `json:"order_ids"`
	CouponCodes []string `json:"coupon_codes"`
	Statuses    []string `json:"statuses"`
}

func EmptyConversionPage() *ConversionPage {
	return &ConversionPage{Conversions: []*Conversion{}}
}

func EmptyConversionFilterValues() *ConversionFilterValues {
	return &ConversionFilterValues{
		OrderIDs:    []string{},
		CouponCodes: []string{},
		Statuses:    []string{},
	}
}

type LogConversionRequest struct {
	OrderID          string           `json:"order_id"`
	OrderNumber      *string          `json:"order_number"`
	CouponID         *string          `json:"coupon_id"`
	OrderAmount      float64          `json:"order_amount"`
	CommissionAmount *float64         `json:"commission_amount"`
	Status           ConversionStatus `json:"status"`
	OrderIsReal      *bool            `json:"order_is_real"`
	SaleDate         *time.Time       `json:"sale_date"`
	CustomerID       *string          `json:"customer_id"`
	CustomerEmail    *string          `json:"customer_email"`
	Metadata         map[string]any   `json:"metadata"`
}
