package dto

import "github.com/hugohenrick/erp-pdv/internal/service/metrics"

// PeriodQuery são os filtros de período aceitos pelos relatórios
type PeriodQuery struct {
	DateFrom string `form:"dateFrom" example:"2026-03-01"`
	DateTo   string `form:"dateTo" example:"2026-03-31"`
	Period   string `form:"period" enums:"daily,weekly,monthly"`
}

// ToFilter converte a query para o filtro do motor de métricas
func (q PeriodQuery) ToFilter() metrics.Filter {
	return metrics.Filter{
		DateFrom: q.DateFrom,
		DateTo:   q.DateTo,
		Period:   metrics.PeriodType(q.Period),
	}
}

// TopProductsQuery acrescenta o limite do ranking
type TopProductsQuery struct {
	PeriodQuery
	Limit int `form:"limit" example:"5"`
}

// TopProductsResponse é o ranking de produtos do período
type TopProductsResponse struct {
	Products []metrics.ProductRank `json:"products"`
}

// ActivityResponse é a série diária dos últimos dias
type ActivityResponse struct {
	Days []metrics.DayBucket `json:"days"`
}
