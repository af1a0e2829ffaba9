package handler

import (
	"net/http"
	"strconv"

	"github.com/trackrcommerce/trackr-api/internal/domain"
	"github.com/trackrcommerce/trackr-api/internal/usecases/converting"
	"github.com/trackrcommerce/trackr-api/pkg/log"
)

func ListConversions(service converting.ConversionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		period, err := dateRange(r)
		if err != nil {
			respond(w, domain.EmptyConversionPage(), err)
			return
		}

		page := pagination(r)
		params := domain.ConversionListParams{
			Page:          page.Page,
			Limit:         page.Limit,
			SortBy:        page.SortBy,
			SortDirection: page.SortDirection,
			CouponCode:    optionalQuery(r, "coupon_code"),
			OrderID:       optionalQuery(r, "order_id"),
			Range:         period,
		}
		if status := optionalQuery(r, "status"); status != nil {
			value := domain.ConversionStatus(*status)
			params.Status = &value
		}
		if onlyReal, err := strconv.ParseBool(r.URL.Query().Get("only_real")); err == nil {
			params.OnlyReal = onlyReal
		}

		result, err := service.ListConversions(r.Context(), brandID(r), params)
		if err != nil {
			log.ForContext(r.Context()).WithFields(log.Fields{
				"brand_id": brandID(r),
				"error":    err.Error(),
			}).Error("converting: erro ao listar conversões")
		}

		respond(w, result, err)
	}
}

func GetConversionFilters(service converting.ConversionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		period, err := dateRange(r)
		if err != nil {
			respond(w, domain.EmptyConversionFilterValues(), err)
			return
		}

		values, err := service.GetConversionFilterValues(r.Context(), brandID(r), period)
		respond(w, values, err)
	}
}

func LogConversion(service converting.ConversionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request domain.LogConversionRequest
		if err := decodeBody(r, &request); err != nil {
			invalidBody(w, nil)
			return
		}

		conversion, err := service.LogConversion(r.Context(), brandID(r), &request)
		if err != nil {
			respond(w, nil, err)
			return
		}

		respondCreated(w, conversion)
	}
}

func ListInfluencerConversions(service converting.ConversionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		period, err := optionalDateRange(r)
		if err != nil {
			respond(w, []*domain.Conversion{}, err)
			return
		}

		conversions, err := service.ListInfluencerConversions(r.Context(), brandID(r), pathParam(r, influencerIDParam), period)
		respond(w, conversions, err)
	}
}
