package handler

import (
	"context"
	"net/http"

	"github.com/trackrcommerce/trackr-api/internal/domain"
	"github.com/trackrcommerce/trackr-api/internal/usecases/reporting"
	"github.com/trackrcommerce/trackr-api/pkg/apiErrors"
	"github.com/trackrcommerce/trackr-api/pkg/log"
)

// widgetHandler monta o handler de um card: lê o período, chama o serviço e responde no envelope.
// Período inválido responde com o valor vazio do card, nunca null.
func widgetHandler[T any](
	widget string,
	empty func(brandID string) T,
	fetch func(ctx context.Context, brandID string, dateRange domain.DateRange) (T, error),
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		brand := brandID(r)

		period, err := dateRange(r)
		if err != nil {
			logger.WithFields(log.Fields{
				"brand_id":   brand,
				"start_date": r.URL.Query().Get("start_date"),
				"end_date":   r.URL.Query().Get("end_date"),
			}).Warn("reporting: período inválido")
			respond(w, empty(brand), err)
			return
		}

		data, err := fetch(r.Context(), brand, period)
		if err != nil {
			logger.WithFields(log.Fields{
				"brand_id": brand,
				"widget":   widget,
				"error":    err.Error(),
			}).Error("reporting: erro ao carregar card")
		}

		respond(w, data, err)
	}
}

func emptyList[T any](string) []T {
	return []T{}
}

func GetBrandMetrics(service reporting.Reporter) http.HandlerFunc {
	return widgetHandler(reporting.WidgetMetrics, domain.EmptyBrandMetrics, service.GetBrandMetrics)
}

func GetDailyRevenue(service reporting.Reporter) http.HandlerFunc {
	return widgetHandler(reporting.WidgetDailyRevenue, emptyList[*domain.DailyRevenue], service.GetDailyRevenue)
}

func GetTopCoupons(service reporting.Reporter) http.HandlerFunc {
	return widgetHandler(reporting.WidgetTopCoupons, emptyList[*domain.CouponRevenue], service.GetTopCoupons)
}

func GetTopClassifications(service reporting.Reporter) http.HandlerFunc {
	return widgetHandler(reporting.WidgetTopClassifications, emptyList[*domain.ClassificationRevenue], service.GetTopClassifications)
}

func GetPendingOrders(service reporting.Reporter) http.HandlerFunc {
	return widgetHandler(reporting.WidgetPendingOrders, func(string) *domain.PendingOrders { return domain.EmptyPendingOrders() }, service.GetPendingOrders)
}

func GetTopUTMSources(service reporting.Reporter) http.HandlerFunc {
	return widgetHandler(reporting.WidgetTopUTMSources, emptyList[*domain.UTMSourceRevenue], service.GetTopUTMSources)
}

type overviewResponse struct {
	Metrics            apiErrors.Envelope `json:"metrics"`
	DailyRevenue       apiErrors.Envelope `json:"daily_revenue"`
	TopCoupons         apiErrors.Envelope `json:"top_coupons"`
	TopClassifications apiErrors.Envelope `json:"top_classifications"`
	PendingOrders      apiErrors.Envelope `json:"pending_orders"`
	TopUTMSources      apiErrors.Envelope `json:"top_utm_sources"`
}

func newOverviewResponse(overview *domain.Overview) *overviewResponse {
	return &overviewResponse{
		Metrics:            apiErrors.NewEnvelope(overview.Metrics.Data, overview.Metrics.Err),
		DailyRevenue:       apiErrors.NewEnvelope(overview.DailyRevenue.Data, overview.DailyRevenue.Err),
		TopCoupons:         apiErrors.NewEnvelope(overview.TopCoupons.Data, overview.TopCoupons.Err),
		TopClassifications: apiErrors.NewEnvelope(overview.TopClassifications.Data, overview.TopClassifications.Err),
		PendingOrders:      apiErrors.NewEnvelope(overview.PendingOrders.Data, overview.PendingOrders.Err),
		TopUTMSources:      apiErrors.NewEnvelope(overview.TopUTMSources.Data, overview.TopUTMSources.Err),
	}
}

// GetOverview carrega todos os cards de uma vez. Cada card traz o próprio erro,
// então a resposta é 200 mesmo com falhas parciais.
func GetOverview(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		brand := brandID(r)

		period, err := dateRange(r)
		if err != nil {
			respond(w, newOverviewResponse(domain.EmptyOverview(brand, nil)), err)
			return
		}

		overview := service.GetOverview(r.Context(), brand, period)

		log.ForContext(r.Context()).WithFields(log.Fields{
			"brand_id":   brand,
			"start_date": period.StartDate(),
			"end_date":   period.EndDate(),
		}).Debug("reporting: overview carregado")

		respond(w, newOverviewResponse(overview), nil)
	}
}
