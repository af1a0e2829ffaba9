package domain

import "time"

// NoInfluencerName é o nome exibido para cupons sem influenciador vinculado
const NoInfluencerName = "Sem influenciador"

type Influencer struct {
	ID             string    `json:"id"`
	BrandID        string    `json:"brand_id"`
	Name           string    `json:"name"`
	SocialHandle   *string   `json:"social_handle"`
	CommissionRate float64   `json:"commission_rate"` // Percentual (ex: 10 = 10%)
	CreatedAt      time.Time `json:"created_at"`
}

// InfluencerPerformance soma o desempenho de todos os cupons do influenciador
type InfluencerPerformance struct {
	InfluencerID    string               `json:"id"`
	Name            string               `json:"name"`
	CommissionRate  float64              `json:"commission_rate"`
	TotalCoupons    int                  `json:"total_coupons"`
	ActiveCoupons   int                  `json:"active_coupons"`
	UsageCount      int                  `json:"usage_count"`
	TotalSales      float64              `json:"total_sales"`
	TotalCommission float64              `json:"total_commission"`
	LastSale        *time.Time           `json:"last_sale"`
	Coupons         []*CouponPerformance `json:"coupons"`
}
