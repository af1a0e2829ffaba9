package domain

import (
	"errors"
	"time"
)

// BrandLocation é o fuso fixo das lojas (GMT-3). Os limites de dia são sempre
// calculados nele, independente do fuso de quem acessa o dashboard.
var BrandLocation = time.FixedZone("GMT-3", -3*60*60)

var ErrInvalidDateRange = errors.New("período de datas inválido")

// DateRange é um intervalo semiaberto [Start, End) em horário da marca.
// End é a meia-noite do dia seguinte ao último dia selecionado.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange monta o intervalo a partir das datas de calendário selecionadas.
// A data final é inclusiva para quem vê a tela.
func NewDateRange(startDate, endDate time.Time) (DateRange, error) {
	if startDate.IsZero() || endDate.IsZero() {
		return DateRange{}, ErrInvalidDateRange
	}

	start := calendarDay(startDate)
	lastDay := calendarDay(endDate)
	if start.After(lastDay) {
		return DateRange{}, ErrInvalidDateRange
	}

	return DateRange{
		Start: start,
		End:   lastDay.AddDate(0, 0, 1),
	}, nil
}

// CurrentMonthRange retorna do primeiro dia do mês até hoje, no horário da marca
func CurrentMonthRange(now time.Time) DateRange {
	local := now.In(BrandLocation)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, BrandLocation)
	return DateRange{
		Start: time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, BrandLocation),
		End:   today.AddDate(0, 0, 1),
	}
}

// ToQueryRange converte as datas selecionadas nos limites usados nas consultas:
// sale_date >= startStr AND sale_date < endStrExclusive
func ToQueryRange(startDate, endDate time.Time) (string, string) {
	start := calendarDay(startDate)
	end := calendarDay(endDate).AddDate(0, 0, 1)
	return start.Format(time.DateOnly), end.Format(time.DateOnly)
}

// Contains indica se o instante está dentro do intervalo
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// StartDate retorna o primeiro dia do intervalo (YYYY-MM-DD)
func (r DateRange) StartDate() string {
	return r.Start.In(BrandLocation).Format(time.DateOnly)
}

// EndDate retorna o último dia incluído no intervalo (YYYY-MM-DD)
func (r DateRange) EndDate() string {
	return r.End.In(BrandLocation).AddDate(0, 0, -1).Format(time.DateOnly)
}

// BrandDay retorna o dia de calendário do instante no horário da marca
func BrandDay(t time.Time) string {
	return t.In(BrandLocation).Format(time.DateOnly)
}

// calendarDay mantém o dia de calendário informado, sem converter o horário
func calendarDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, BrandLocation)
}
