package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"
	"github.com/trackrcommerce/trackr-api/internal/domain"
	"github.com/trackrcommerce/trackr-api/pkg/apiErrors"
	"github.com/trackrcommerce/trackr-api/pkg/middleware"
	"github.com/trackrcommerce/trackr-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var errInvalidBody = errors.New("corpo da requisição inválido")

// now é substituído nos testes
var now = time.Now

func brandID(r *http.Request) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(middleware.BrandIDParam)
}

func pathParam(r *http.Request, name string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(name)
}

// dateRange lê start_date/end_date (YYYY-MM-DD). Sem nenhuma das duas, usa o mês corrente.
func dateRange(r *http.Request) (domain.DateRange, error) {
	query := r.URL.Query()
	rawStart, rawEnd := query.Get("start_date"), query.Get("end_date")

	if rawStart == "" && rawEnd == "" {
		return domain.CurrentMonthRange(now()), nil
	}

	startDate, err := utils.ParseDate(rawStart)
	if err != nil {
		return domain.DateRange{}, domain.ErrInvalidDateRange
	}
	endDate, err := utils.ParseDate(rawEnd)
	if err != nil {
		return domain.DateRange{}, domain.ErrInvalidDateRange
	}

	return domain.NewDateRange(*startDate, *endDate)
}

// optionalDateRange devolve nil sem start_date/end_date, para consultas que
// consideram todo o histórico
func optionalDateRange(r *http.Request) (*domain.DateRange, error) {
	query := r.URL.Query()
	if query.Get("start_date") == "" && query.Get("end_date") == "" {
		return nil, nil
	}

	period, err := dateRange(r)
	if err != nil {
		return nil, err
	}
	return &period, nil
}

type pageQuery struct {
	Page          int
	Limit         int
	SortBy        string
	SortDirection domain.SortDirection
}

// maxPageSize limita o tamanho de página pedido pelo cliente
const maxPageSize = 100

func pagination(r *http.Request) pageQuery {
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))
	if limit > maxPageSize {
		limit = maxPageSize
	}

	return pageQuery{
		Page:          page,
		Limit:         limit,
		SortBy:        query.Get("sort_by"),
		SortDirection: domain.ParseSortDirection(strings.ToLower(query.Get("sort_direction")), domain.SortDesc),
	}
}

// optionalQuery devolve nil para parâmetros ausentes ou vazios
func optionalQuery(r *http.Request, name string) *string {
	value := strings.TrimSpace(r.URL.Query().Get(name))
	if value == "" {
		return nil
	}
	return &value
}

func decodeBody(r *http.Request, dest any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dest)
}

func respond(w http.ResponseWriter, data any, err error) {
	apiErrors.WriteEnvelope(w, data, err)
}

func respondCreated(w http.ResponseWriter, data any) {
	apiErrors.WriteJSON(w, http.StatusCreated, apiErrors.NewEnvelope(data, nil))
}

func invalidBody(w http.ResponseWriter, data any) {
	apiErrors.WriteJSON(w, http.StatusBadRequest, apiErrors.NewEnvelope(data, errInvalidBody))
}
