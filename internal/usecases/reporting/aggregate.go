package reporting

import (
	"sort"

	"github.com/trackrcommerce/trackr-api/internal/domain"
	"github.com/trackrcommerce/trackr-api/pkg/utils"
)

const (
	topCouponsLimit         = 10
	topClassificationsLimit = 5
	topUTMSourcesLimit      = 10
)

// Os valores são somados em float64 e só arredondados na saída de cada função

type revenueBucket struct {
	revenue float64
	count   int
}

// qualifying aplica o classificador de receita em memória, mesmo que o banco já
// tenha filtrado pelos mesmos status
func qualifying(conversions []*domain.Conversion, accepted domain.StatusSet) []*domain.Conversion {
	out := make([]*domain.Conversion, 0, len(conversions))
	for _, conversion := range conversions {
		if conversion.IsRealizedRevenue(accepted) {
			out = append(out, conversion)
		}
	}
	return out
}

// groupDaily agrupa por dia no horário da marca. Dias sem venda não aparecem.
func groupDaily(conversions []*domain.Conversion) []*domain.DailyRevenue {
	buckets := make(map[string]*revenueBucket)
	for _, conversion := range conversions {
		day := domain.BrandDay(conversion.SaleDate)
		bucket, ok := buckets[day]
		if !ok {
			bucket = &revenueBucket{}
			buckets[day] = bucket
		}
		bucket.revenue += conversion.OrderAmount
		bucket.count++
	}

	series := make([]*domain.DailyRevenue, 0, len(buckets))
	for day, bucket := range buckets {
		series = append(series, &domain.DailyRevenue{
			Date:       day,
			Revenue:    utils.RoundWithTwoDecimalPlace(bucket.revenue),
			OrderCount: bucket.count,
		})
	}

	// YYYY-MM-DD ordena igual à data
	sort.Slice(series, func(i, j int) bool {
		return series[i].Date < series[j].Date
	})

	return series
}

func rankCoupons(conversions []*domain.Conversion, limit int) []*domain.CouponRevenue {
	totals := make(map[string]float64)
	for _, conversion := range conversions {
		code := conversion.DisplayCouponCode()
		if code == domain.NoCouponCode {
			continue
		}
		totals[code] += conversion.OrderAmount
	}

	codes := make([]string, 0, len(totals))
	for code := range totals {
		codes = append(codes, code)
	}

	sort.Slice(codes, func(i, j int) bool {
		if totals[codes[i]] != totals[codes[j]] {
			return totals[codes[i]] > totals[codes[j]]
		}
		return codes[i] < codes[j]
	})

	if len(codes) > limit {
		codes = codes[:limit]
	}

	ranking := make([]*domain.CouponRevenue, 0, len(codes))
	for _, code := range codes {
		ranking = append(ranking, &domain.CouponRevenue{
			Code:    code,
			Revenue: utils.RoundWithTwoDecimalPlace(totals[code]),
		})
	}

	return ranking
}

type classificationBucket struct {
	key     domain.ClassificationKey
	name    string
	color   string
	revenue float64
}

// rankClassifications agrupa pela classificação do cupom. Só entram classificações
// ativas; cupom sem classificação, conversão sem cupom e classificação excluída
// caem todos no mesmo bucket "Sem classificação".
func rankClassifications(
	conversions []*domain.Conversion,
	active map[string]*domain.CouponClassification,
	limit int,
) []*domain.ClassificationRevenue {
	buckets := make(map[domain.ClassificationKey]*classificationBucket)

	for _, conversion := range conversions {
		key := domain.NoClassification
		if conversion.CouponClassificationID != nil {
			if classification, ok := active[*conversion.CouponClassificationID]; ok && classification.IsActive {
				key = domain.ClassificationKeyOf(classification.ID)
			}
		}

		bucket, ok := buckets[key]
		if !ok {
			bucket = newClassificationBucket(key, active)
			buckets[key] = bucket
		}
		bucket.revenue += conversion.OrderAmount
	}

	ordered := make([]*classificationBucket, 0, len(buckets))
	for _, bucket := range buckets {
		ordered = append(ordered, bucket)
	}

	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].revenue != ordered[j].revenue {
			return ordered[i].revenue > ordered[j].revenue
		}
		if ordered[i].name != ordered[j].name {
			return ordered[i].name < ordered[j].name
		}
		return ordered[i].key.ID < ordered[j].key.ID
	})

	if len(ordered) > limit {
		ordered = ordered[:limit]
	}

	ranking := make([]*domain.ClassificationRevenue, 0, len(ordered))
	for _, bucket := range ordered {
		item := &domain.ClassificationRevenue{
			Name:    bucket.name,
			Color:   bucket.color,
			Revenue: utils.RoundWithTwoDecimalPlace(bucket.revenue),
		}
		if !bucket.key.None {
			id := bucket.key.ID
			item.ID = &id
		}
		ranking = append(ranking, item)
	}

	return ranking
}

func newClassificationBucket(key domain.ClassificationKey, active map[string]*domain.CouponClassification) *classificationBucket {
	if key.None {
		return &classificationBucket{key: key, name: domain.UnclassifiedName, color: domain.DefaultClassificationColor}
	}

	classification := active[key.ID]
	color := classification.Color
	if color == "" {
		color = domain.DefaultClassificationColor
	}
	return &classificationBucket{key: key, name: classification.Name, color: color}
}

func rollupPending(conversions []*domain.Conversion) *domain.PendingOrders {
	var total float64
	for _, conversion := range conversions {
		total += conversion.OrderAmount
	}

	return &domain.PendingOrders{
		Revenue: utils.RoundWithTwoDecimalPlace(total),
		Count:   len(conversions),
		Daily:   groupDaily(conversions),
	}
}

// summarize monta as métricas gerais. CommissionRate é a razão comissão/receita
// (0 sem receita) e InfluencersWithSales conta os cupons distintos com venda no período.
func summarize(
	brandID string,
	conversions []*domain.Conversion,
	coupons []*domain.Coupon,
	influencers []*domain.Influencer,
) *domain.BrandMetrics {
	var revenue, commissions float64
	couponsWithSales := make(map[string]struct{})

	for _, conversion := range conversions {
		revenue += conversion.OrderAmount
		commissions += conversion.CommissionAmount
		if conversion.CouponID != nil && *conversion.CouponID != "" {
			couponsWithSales[*conversion.CouponID] = struct{}{}
		}
	}

	activeCoupons := 0
	for _, coupon := range coupons {
		if coupon.IsActive {
			activeCoupons++
		}
	}

	return &domain.BrandMetrics{
		BrandID:              brandID,
		TotalRevenue:         utils.RoundWithTwoDecimalPlace(revenue),
		TotalCommissions:     utils.RoundWithTwoDecimalPlace(commissions),
		TotalOrders:          len(conversions),
		CommissionRate:       utils.SafeDivide(commissions, revenue),
		TotalCoupons:         len(coupons),
		ActiveCoupons:        activeCoupons,
		TotalInfluencers:     len(influencers),
		InfluencersWithSales: len(couponsWithSales),
	}
}

func rankUTMSources(conversions []*domain.Conversion, limit int) []*domain.UTMSourceRevenue {
	buckets := make(map[string]*revenueBucket)
	for _, conversion := range conversions {
		source := conversion.UTMSource()
		if source == "" {
			source = domain.DirectUTMSource
		}

		bucket, ok := buckets[source]
		if !ok {
			bucket = &revenueBucket{}
			buckets[source] = bucket
		}
		bucket.revenue += conversion.OrderAmount
		bucket.count++
	}

	sources := make([]string, 0, len(buckets))
	for source := range buckets {
		sources = append(sources, source)
	}

	sort.Slice(sources, func(i, j int) bool {
		if buckets[sources[i]].revenue != buckets[sources[j]].revenue {
			return buckets[sources[i]].revenue > buckets[sources[j]].revenue
		}
		return sources[i] < sources[j]
	})

	if len(sources) > limit {
		sources = sources[:limit]
	}

	ranking := make([]*domain.UTMSourceRevenue, 0, len(sources))
	for _, source := range sources {
		ranking = append(ranking, &domain.UTMSourceRevenue{
			Source:     source,
			Revenue:    utils.RoundWithTwoDecimalPlace(buckets[source].revenue),
			OrderCount: buckets[source].count,
		})
	}

	return ranking
}
