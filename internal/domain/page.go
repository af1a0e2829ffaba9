package domain

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ParseSortDirection aceita "asc"/"desc" e usa o padrão informado para valores desconhecidos
func ParseSortDirection(value string, fallback SortDirection) SortDirection {
	switch SortDirection(value) {
	case SortAsc, SortDesc:
		return SortDirection(value)
	}
	return fallback
}

type CouponListParams struct {
	Page           int
	Limit          int
	SortBy         string
	SortDirection  SortDirection
	CouponCode     *string
	InfluencerName *string
	Range          DateRange
}

type ConversionListParams struct {
	Page          int
	Limit         int
	SortBy        string
	SortDirection SortDirection
	Status        *ConversionStatus
	CouponCode    *string
	OrderID       *string
	OnlyReal      bool
	Range         DateRange
}
