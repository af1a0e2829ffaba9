package handler

import (
	"net/http"

	"github.com/trackrcommerce/trackr-api/internal/domain"
	"github.com/trackrcommerce/trackr-api/internal/usecases/classifying"
	"github.com/trackrcommerce/trackr-api/internal/usecases/couponing"
	"github.com/trackrcommerce/trackr-api/pkg/log"
)

func ListCoupons(service couponing.CouponService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		period, err := dateRange(r)
		if err != nil {
			respond(w, domain.EmptyCouponPage(), err)
			return
		}

		page := pagination(r)
		params := domain.CouponListParams{
			Page:           page.Page,
			Limit:          page.Limit,
			SortBy:         page.SortBy,
			SortDirection:  page.SortDirection,
			CouponCode:     optionalQuery(r, "coupon_code"),
			InfluencerName: optionalQuery(r, "influencer_name"),
			Range:          period,
		}

		result, err := service.ListCouponsWithMetrics(r.Context(), brandID(r), params)
		if err != nil {
			log.ForContext(r.Context()).WithFields(log.Fields{
				"brand_id": brandID(r),
				"error":    err.Error(),
			}).Error("couponing: erro ao listar cupons")
		}

		respond(w, result, err)
	}
}

func GetCouponFilters(service couponing.CouponService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		period, err := dateRange(r)
		if err != nil {
			respond(w, domain.EmptyCouponFilterValues(), err)
			return
		}

		values, err := service.GetCouponFilterValues(r.Context(), brandID(r), period)
		respond(w, values, err)
	}
}

func CreateCoupon(service couponing.CouponService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request domain.CreateCouponRequest
		if err := decodeBody(r, &request); err != nil {
			invalidBody(w, nil)
			return
		}

		coupon, err := service.CreateCoupon(r.Context(), brandID(r), &request)
		if err != nil {
			respond(w, nil, err)
			return
		}

		respondCreated(w, coupon)
	}
}

func ListInfluencers(service couponing.CouponService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		influencers, err := service.ListInfluencers(r.Context(), brandID(r))
		respond(w, influencers, err)
	}
}

type assignClassificationRequest struct {
	ClassificationID string `json:"classification_id"`
}

func AssignCouponClassification(service classifying.ClassificationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request assignClassificationRequest
		if err := decodeBody(r, &request); err != nil {
			invalidBody(w, nil)
			return
		}

		couponID := pathParam(r, couponIDParam)
		err := service.AssignToCoupon(r.Context(), brandID(r), couponID, request.ClassificationID)
		if err != nil {
			log.ForContext(r.Context()).WithFields(log.Fields{
				"brand_id":          brandID(r),
				"coupon_id":         couponID,
				"classification_id": request.ClassificationID,
				"error":             err.Error(),
			}).Warn("classifying: classificação do cupom recusada")
			respond(w, nil, err)
			return
		}

		respond(w, map[string]string{"coupon_id": couponID, "classification_id": request.ClassificationID}, nil)
	}
}

const (
	couponIDParam     = "coupon_id"
	influencerIDParam = "influencer_id"
)

func GetCouponPerformance(service couponing.CouponService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		period, err := optionalDateRange(r)
		if err != nil {
			respond(w, nil, err)
			return
		}

		performance, err := service.GetCouponPerformance(r.Context(), brandID(r), pathParam(r, couponIDParam), period)
		respond(w, performance, err)
	}
}

func GetInfluencerPerformance(service couponing.CouponService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		period, err := optionalDateRange(r)
		if err != nil {
			respond(w, nil, err)
			return
		}

		influencerID := pathParam(r, influencerIDParam)
		performance, err := service.GetInfluencerPerformance(r.Context(), brandID(r), influencerID, period)
		if err != nil {
			log.ForContext(r.Context()).WithFields(log.Fields{
				"brand_id":      brandID(r),
				"influencer_id": influencerID,
				"error":         err.Error(),
			}).Warn("couponing: erro ao calcular desempenho do influenciador")
		}

		respond(w, performance, err)
	}
}
