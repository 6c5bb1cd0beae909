// Package metrics deriva relatórios somente leitura sobre as vendas
// confirmadas de um tenant: estatísticas, ranking de produtos, série
// diária e o melhor dia da semana.
package metrics

import (
	"strings"
	"time"

	"github.com/hugohenrick/erp-pdv/internal/domain/failure"
)

// PeriodType é o período simbólico de um relatório
type PeriodType string

const (
	PeriodDaily   PeriodType = "daily"
	PeriodWeekly  PeriodType = "weekly"
	PeriodMonthly PeriodType = "monthly"
	PeriodCustom  PeriodType = "custom"
)

// Filter são os parâmetros de período recebidos do chamador.
// Datas explícitas (YYYY-MM-DD) têm precedência sobre Period.
type Filter struct {
	DateFrom string
	DateTo   string
	Period   PeriodType
}

// Period é um intervalo semiaberto [From, To)
type Period struct {
	From time.Time  `json:"from"`
	To   time.Time  `json:"to"`
	Type PeriodType `json:"type"`
}

// Contains verifica se t está dentro do período
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.From) && t.Before(p.To)
}

// StartOfDay retorna a meia-noite do dia de t no fuso loc
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// ResolvePeriod converte o filtro em um intervalo concreto relativo a now
func ResolvePeriod(f Filter, now time.Time, loc *time.Location) (Period, error) {
	if f.DateFrom != "" || f.DateTo != "" {
		return explicitPeriod(f.DateFrom, f.DateTo, loc)
	}

	today := StartOfDay(now, loc)
	switch PeriodType(strings.ToLower(string(f.Period))) {
	case "", PeriodDaily:
		return Period{From: today, To: today.AddDate(0, 0, 1), Type: PeriodDaily}, nil
	case PeriodWeekly:
		// semana ISO, começando na segunda-feira
		offset := (int(today.Weekday()) + 6) % 7
		start := today.AddDate(0, 0, -offset)
		return Period{From: start, To: start.AddDate(0, 0, 7), Type: PeriodWeekly}, nil
	case PeriodMonthly:
		start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, loc)
		return Period{From: start, To: start.AddDate(0, 1, 0), Type: PeriodMonthly}, nil
	default:
		return Period{}, failure.Validation("period", "período deve ser daily, weekly ou monthly")
	}
}

func explicitPeriod(from, to string, loc *time.Location) (Period, error) {
	if from == "" || to == "" {
		return Period{}, failure.Validation("dateFrom", "dateFrom e dateTo devem ser informados juntos")
	}
	start, err := time.ParseInLocation(time.DateOnly, from, loc)
	if err != nil {
		return Period{}, failure.Validation("dateFrom", "data inválida, use o formato AAAA-MM-DD")
	}
	end, err := time.ParseInLocation(time.DateOnly, to, loc)
	if err != nil {
		return Period{}, failure.Validation("dateTo", "data inválida, use o formato AAAA-MM-DD")
	}
	if start.After(end) {
		return Period{}, failure.Validation("dateFrom", "dateFrom não pode ser posterior a dateTo")
	}
	return Period{From: start, To: end.AddDate(0, 0, 1), Type: PeriodCustom}, nil
}
