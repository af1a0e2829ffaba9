package handler

import (
	"net/http"

	"github.com/trackrcommerce/trackr-api/internal/api/handler/router"
	"github.com/trackrcommerce/trackr-api/internal/usecases/authenticating"
	"github.com/trackrcommerce/trackr-api/internal/usecases/branding"
	"github.com/trackrcommerce/trackr-api/internal/usecases/classifying"
	"github.com/trackrcommerce/trackr-api/internal/usecases/converting"
	"github.com/trackrcommerce/trackr-api/internal/usecases/couponing"
	"github.com/trackrcommerce/trackr-api/internal/usecases/reporting"
	"github.com/trackrcommerce/trackr-api/pkg/middleware"
)

type middlewares = []func(http.Handler) http.Handler

// brandRead e brandWrite checam o perfil antes do acesso à marca
func brandRead(access middleware.BrandAccessChecker) middlewares {
	return middlewares{middleware.AllRoles(), middleware.BrandAccess(access)}
}

func brandWrite(access middleware.BrandAccessChecker) middlewares {
	return middlewares{middleware.MasterOrBrandAdmin(), middleware.BrandAccess(access)}
}

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Metrics(handler http.Handler) []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: handler,
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/register",
			Method:  http.MethodPost,
			Handler: CreateUser(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/users/:id/change-password",
			Method:      http.MethodPost,
			Handler:     ChangePassword(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/users/:id/reset-password",
			Method:      http.MethodPost,
			Handler:     ResetPassword(service),
			Middlewares: middlewares{middleware.MasterOnly()},
		},
	}
}

func User(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/users",
			Method:      http.MethodGet,
			Handler:     ListUsers(service),
			Middlewares: middlewares{middleware.MasterOnly()},
		},
		{
			Path:        "/v1/users",
			Method:      http.MethodPost,
			Handler:     CreateUser(service),
			Middlewares: middlewares{middleware.MasterOnly()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodPut,
			Handler:     UpdateUser(service),
			Middlewares: middlewares{middleware.MasterOnly()},
		},
	}
}

func Brands(service branding.BrandService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/brands",
			Method:      http.MethodGet,
			Handler:     ListBrands(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/brands/:brand_id/secret",
			Method:      http.MethodPut,
			Handler:     StoreBrandSecret(service),
			Middlewares: brandWrite(service),
		},
	}
}

func Reports(service reporting.Reporter, access middleware.BrandAccessChecker) []router.Route {
	widgets := []struct {
		path    string
		handler http.HandlerFunc
	}{
		{"/v1/brands/:brand_id/metrics", GetBrandMetrics(service)},
		{"/v1/brands/:brand_id/overview", GetOverview(service)},
		{"/v1/brands/:brand_id/overview/daily-revenue", GetDailyRevenue(service)},
		{"/v1/brands/:brand_id/overview/top-coupons", GetTopCoupons(service)},
		{"/v1/brands/:brand_id/overview/top-classifications", GetTopClassifications(service)},
		{"/v1/brands/:brand_id/overview/pending-orders", GetPendingOrders(service)},
		{"/v1/brands/:brand_id/overview/top-utm-sources", GetTopUTMSources(service)},
	}

	routes := make([]router.Route, 0, len(widgets))
	for _, widget := range widgets {
		routes = append(routes, router.Route{
			Path:        widget.path,
			Method:      http.MethodGet,
			Handler:     widget.handler,
			Middlewares: brandRead(access),
		})
	}
	return routes
}

func Coupons(service couponing.CouponService, classifications classifying.ClassificationService, access middleware.BrandAccessChecker) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/brands/:brand_id/coupons",
			Method:      http.MethodGet,
			Handler:     ListCoupons(service),
			Middlewares: brandRead(access),
		},
		{
			Path:        "/v1/brands/:brand_id/coupons",
			Method:      http.MethodPost,
			Handler:     CreateCoupon(service),
			Middlewares: brandWrite(access),
		},
		{
			Path:        "/v1/brands/:brand_id/coupons/:coupon_id/classification",
			Method:      http.MethodPut,
			Handler:     AssignCouponClassification(classifications),
			Middlewares: brandWrite(access),
		},
		{
			Path:        "/v1/brands/:brand_id/coupons/:coupon_id/performance",
			Method:      http.MethodGet,
			Handler:     GetCouponPerformance(service),
			Middlewares: brandRead(access),
		},
		{
			Path:        "/v1/brands/:brand_id/influencers/:influencer_id/performance",
			Method:      http.MethodGet,
			Handler:     GetInfluencerPerformance(service),
			Middlewares: brandRead(access),
		},
		{
			Path:        "/v1/brands/:brand_id/coupon-filters",
			Method:      http.MethodGet,
			Handler:     GetCouponFilters(service),
			Middlewares: brandRead(access),
		},
		{
			Path:        "/v1/brands/:brand_id/influencers",
			Method:      http.MethodGet,
			Handler:     ListInfluencers(service),
			Middlewares: brandRead(access),
		},
	}
}

func Conversions(service converting.ConversionService, access middleware.BrandAccessChecker) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/brands/:brand_id/conversions",
			Method:      http.MethodGet,
			Handler:     ListConversions(service),
			Middlewares: brandRead(access),
		},
		{
			Path:        "/v1/brands/:brand_id/conversions",
			Method:      http.MethodPost,
			Handler:     LogConversion(service),
			Middlewares: brandWrite(access),
		},
		{
			Path:        "/v1/brands/:brand_id/influencers/:influencer_id/conversions",
			Method:      http.MethodGet,
			Handler:     ListInfluencerConversions(service),
			Middlewares: brandRead(access),
		},
		{
			Path:        "/v1/brands/:brand_id/conversion-filters",
			Method:      http.MethodGet,
			Handler:     GetConversionFilters(service),
			Middlewares: brandRead(access),
		},
	}
}

func Classifications(service classifying.ClassificationService, access middleware.BrandAccessChecker) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/brands/:brand_id/classifications",
			Method:      http.MethodGet,
			Handler:     ListClassifications(service),
			Middlewares: brandRead(access),
		},
		{
			Path:        "/v1/brands/:brand_id/classifications",
			Method:      http.MethodPost,
			Handler:     CreateClassification(service),
			Middlewares: brandWrite(access),
		},
		{
			Path:        "/v1/brands/:brand_id/classifications/:classification_id",
			Method:      http.MethodGet,
			Handler:     GetClassification(service),
			Middlewares: brandRead(access),
		},
		{
			Path:        "/v1/brands/:brand_id/classifications/:classification_id",
			Method:      http.MethodPut,
			Handler:     UpdateClassification(service),
			Middlewares: brandWrite(access),
		},
		{
			Path:        "/v1/brands/:brand_id/classifications/:classification_id",
			Method:      http.MethodDelete,
			Handler:     DeleteClassification(service),
			Middlewares: brandWrite(access),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: middlewares{middleware.MasterOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: middlewares{middleware.MasterOnly()},
		},
	}
}
