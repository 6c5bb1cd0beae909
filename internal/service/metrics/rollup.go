package metrics

import (
	"sort"
	"time"

	"github.com/hugohenrick/erp-pdv/internal/domain/sale"
	"github.com/shopspring/decimal"
)

// Stats são o total vendido e o número de transações de um conjunto de vendas
type Stats struct {
	TotalSales       decimal.Decimal `json:"total_sales"`
	TransactionCount int             `json:"transaction_count"`
}

// ProductRank é a soma das quantidades e da receita de um produto
type ProductRank struct {
	ProductID *string         `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// DayBucket é o movimento de um dia de calendário
type DayBucket struct {
	Date  string          `json:"date"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// ComputeStats soma os totais das vendas
func ComputeStats(sales []*sale.Sale) Stats {
	total := decimal.Zero
	for _, s := range sales {
		total = total.Add(s.Total)
	}
	return Stats{TotalSales: total, TransactionCount: len(sales)}
}

// TopProducts agrupa os itens por produto e ordena por quantidade
// decrescente. Empates mantêm a ordem em que o produto apareceu primeiro.
// Itens cujo produto foi removido são agrupados pelo nome gravado.
// limit <= 0 retorna todos.
func TopProducts(sales []*sale.Sale, limit int) []ProductRank {
	index := make(map[string]int)
	ranks := make([]ProductRank, 0)

	for _, s := range sales {
		for _, it := range s.Items {
			key := "name:" + it.ProductName
			if it.ProductID != nil {
				key = "id:" + *it.ProductID
			}
			if i, ok := index[key]; ok {
				ranks[i].Quantity += it.Quantity
				ranks[i].Revenue = ranks[i].Revenue.Add(it.Subtotal)
				continue
			}
			index[key] = len(ranks)
			ranks = append(ranks, ProductRank{
				ProductID: it.ProductID,
				Name:      it.ProductName,
				Quantity:  it.Quantity,
				Revenue:   it.Subtotal,
			})
		}
	}

	sort.SliceStable(ranks, func(i, j int) bool { return ranks[i].Quantity > ranks[j].Quantity })
	if limit > 0 && len(ranks) > limit {
		ranks = ranks[:limit]
	}
	return ranks
}

// ActivityWindow retorna o intervalo de days dias de calendário que
// termina no dia de today, inclusive
func ActivityWindow(today time.Time, loc *time.Location, days int) Period {
	end := StartOfDay(today, loc).AddDate(0, 0, 1)
	return Period{From: end.AddDate(0, 0, -days), To: end, Type: PeriodCustom}
}

// DailyActivity retorna um bucket por dia do período, inclusive os dias
// sem venda. O dia de cada venda é o dia de calendário no fuso loc.
func DailyActivity(sales []*sale.Sale, window Period, loc *time.Location) []DayBucket {
	buckets := make([]DayBucket, 0)
	index := make(map[string]int)
	for d := window.From; d.Before(window.To); d = d.AddDate(0, 0, 1) {
		key := d.Format(time.DateOnly)
		index[key] = len(buckets)
		buckets = append(buckets, DayBucket{Date: key, Total: decimal.Zero})
	}

	for _, s := range sales {
		key := s.CreatedAt.In(loc).Format(time.DateOnly)
		i, ok := index[key]
		if !ok {
			continue
		}
		buckets[i].Total = buckets[i].Total.Add(s.Total)
		buckets[i].Count++
	}
	return buckets
}

// BestWeekday soma os totais por dia da semana no fuso loc e retorna o
// dia com a maior soma. Empates ficam com o menor índice (domingo = 0).
// ok é falso quando não há vendas.
func BestWeekday(sales []*sale.Sale, loc *time.Location) (day time.Weekday, ok bool) {
	if len(sales) == 0 {
		return time.Sunday, false
	}

	var sums [7]decimal.Decimal
	for i := range sums {
		sums[i] = decimal.Zero
	}
	for _, s := range sales {
		wd := s.CreatedAt.In(loc).Weekday()
		sums[wd] = sums[wd].Add(s.Total)
	}

	best := time.Sunday
	for d := time.Sunday; d <= time.Saturday; d++ {
		if sums[d].GreaterThan(sums[best]) {
			best = d
		}
	}
	return best, true
}

// AverageTicket retorna total / quantidade com 2 casas, ou zero sem vendas
func AverageTicket(st Stats) decimal.Decimal {
	if st.TransactionCount == 0 {
		return decimal.Zero
	}
	return st.TotalSales.DivRound(decimal.NewFromInt(int64(st.TransactionCount)), sale.Scale)
}

// Growth retorna a variação percentual de current sobre previous com 2
// casas. ok é falso quando previous não é positivo.
func Growth(current, previous decimal.Decimal) (decimal.Decimal, bool) {
	if !previous.IsPositive() {
		return decimal.Zero, false
	}
	return current.Sub(previous).Mul(decimal.NewFromInt(100)).DivRound(previous, sale.Scale), true
}
