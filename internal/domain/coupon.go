package domain

import "time"

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountAbsolute   DiscountType = "absolute"
)

func (d DiscountType) IsValid() bool {
	return d == DiscountPercentage || d == DiscountAbsolute
}

// Coupon é a projeção de leitura de um cupom, já com o nome do influenciador
type Coupon struct {
	ID                      string       `json:"id"`
	BrandID                 string       `json:"brand_id"`
	Code                    string       `json:"code"`
	InfluencerID            *string      `json:"influencer_id"`
	InfluencerName          *string      `json:"influencer_name"`
	DiscountValue           float64      `json:"discount_value"`
	DiscountType            DiscountType `json:"discount_type"`
	IsActive                bool         `json:"is_active"`
	ClassificationID        *string      `json:"classification"`
	ClassificationUpdatedAt *time.Time   `json:"classification_updated_at"`
	CreatedAt               time.Time    `json:"created_at"`
}

// DisplayInfluencerName retorna o nome do influenciador ou o texto padrão
func (c *Coupon) DisplayInfluencerName() string {
	if c.InfluencerName == nil || *c.InfluencerName == "" {
		return NoInfluencerName
	}
	return *c.InfluencerName
}

// CouponMetric é uma linha da tabela de cupons: metadados + uso no período
type CouponMetric struct {
	Coupon
	InfluencerDisplayName string                `json:"influencer_display_name"`
	Classification        *CouponClassification `json:"classification_detail"`
	UsageCount            int                   `json:"usage_count"`
	TotalSales            float64               `json:"total_sales"`
	LastUsage             *time.Time            `json:"last_usage"`
}

type CouponPage struct {
	Coupons    []*CouponMetric `json:"coupons"`
	TotalCount int             `json:"total_count"`
}

type CouponFilterValues struct {
	CouponCodes     []string `json:"coupon_codes"`
	InfluencerNames []string `json:"influencer_names"`
	Classifications []string `json:"classifications"`
}

func EmptyCouponPage() *CouponPage {
	return &CouponPage{Coupons: []*CouponMetric{}}
}

func EmptyCouponFilterValues() *CouponFilterValues {
	return &CouponFilterValues{
		CouponCodes:     []string{},
		InfluencerNames: []string{},
		Classifications: []string{},
	}
}

// CouponPerformance é o uso acumulado de um cupom, com a comissão gerada
type CouponPerformance struct {
	CouponID        string     `json:"id"`
	Code            string     `json:"code"`
	InfluencerName  string     `json:"influencer_name"`
	IsActive        bool       `json:"is_active"`
	UsageCount      int        `json:"usage_count"`
	TotalSales      float64    `json:"total_sales"`
	TotalCommission float64    `json:"total_commission"`
	LastSale        *time.Time `json:"last_sale"`
}

type CreateCouponRequest struct {
	Code          string       `json:"code"`
	InfluencerID  *string      `json:"influencer_id"`
	DiscountValue float64      `json:"discount_value"`
	DiscountType  DiscountType `json:"discount_type"`
}
