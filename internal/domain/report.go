package domain

// DailyRevenue é um ponto da série diária de vendas
type DailyRevenue struct {
	Date       string  `json:"date"`
	Revenue    float64 `json:"revenue"`
	OrderCount int     `json:"order_count"`
}

type CouponRevenue struct {
	Code    string  `json:"code"`
	Revenue float64 `json:"revenue"`
}

type ClassificationRevenue struct {
	ID      *string `json:"id"`
	Name    string  `json:"name"`
	Color   string  `json:"color"`
	Revenue float64 `json:"revenue"`
}

type UTMSourceRevenue struct {
	Source     string  `json:"source"`
	Revenue    float64 `json:"revenue"`
	OrderCount int     `json:"order_count"`
}

type PendingOrders struct {
	Revenue float64         `json:"revenue"`
	Count   int             `json:"count"`
	Daily   []*DailyRevenue `json:"daily"`
}

type BrandMetrics struct {
	BrandID              string  `json:"id"`
	TotalRevenue         float64 `json:"total_revenue"`
	TotalCommissions     float64 `json:"total_commissions"`
	TotalOrders          int     `json:"total_orders"`
	CommissionRate       float64 `json:"commission_rate"`
	TotalCoupons         int     `json:"total_coupons"`
	ActiveCoupons        int     `json:"active_coupons"`
	TotalInfluencers     int     `json:"total_influencers"`
	InfluencersWithSales int     `json:"influencers_with_sales"`
}

// Widget carrega o resultado de um card do dashboard com o próprio erro,
// para que a falha de um card não impeça os demais de renderizar
type Widget[T any] struct {
	Data T
	Err  error
}

type Overview struct {
	Metrics            Widget[*BrandMetrics]
	DailyRevenue       Widget[[]*DailyRevenue]
	TopCoupons         Widget[[]*CouponRevenue]
	TopClassifications Widget[[]*ClassificationRevenue]
	PendingOrders      Widget[*PendingOrders]
	TopUTMSources      Widget[[]*UTMSourceRevenue]
}

func EmptyBrandMetrics(brandID string) *BrandMetrics {
	return &BrandMetrics{BrandID: brandID}
}

func EmptyPendingOrders() *PendingOrders {
	return &PendingOrders{Daily: []*DailyRevenue{}}
}

// EmptyOverview devolve todos os cards vazios, cada um com o mesmo erro
func EmptyOverview(brandID string, err error) *Overview {
	return &Overview{
		Metrics:            Widget[*BrandMetrics]{Data: EmptyBrandMetrics(brandID), Err: err},
		DailyRevenue:       Widget[[]*DailyRevenue]{Data: []*DailyRevenue{}, Err: err},
		TopCoupons:         Widget[[]*CouponRevenue]{Data: []*CouponRevenue{}, Err: err},
		TopClassifications: Widget[[]*ClassificationRevenue]{Data: []*ClassificationRevenue{}, Err: err},
		PendingOrders:      Widget[*PendingOrders]{Data: EmptyPendingOrders(), Err: err},
		TopUTMSources:      Widget[[]*UTMSourceRevenue]{Data: []*UTMSourceRevenue{}, Err: err},
	}
}
