package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/hugohenrick/erp-pdv/internal/domain/failure"
	"github.com/hugohenrick/erp-pdv/internal/domain/sale"
	"github.com/hugohenrick/erp-pdv/pkg/logger"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

const (
	// DashboardTopLimit é o tamanho do ranking no histórico e no dashboard
	DashboardTopLimit = 3
	// DefaultTopLimit é o tamanho padrão do ranking avulso
	DefaultTopLimit = 5
	// ActivityDays é o tamanho da janela da série diária
	ActivityDays = 30
	// InsightDays é o tamanho de cada janela comparada no snapshot
	InsightDays = 30
)

// Reader é a leitura de vendas usada pelos relatórios
type Reader interface {
	FindInRange(ctx context.Context, tenantID string, from, to time.Time) ([]*sale.Sale, error)
}

// Cache guarda relatórios já calculados. Erros de cache nunca falham
// a consulta.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	DeletePattern(ctx context.Context, pattern string) error
}

// SaleRow é a linha de uma venda no histórico
type SaleRow struct {
	ID       string          `json:"id"`
	Date     time.Time       `json:"date"`
	Client   string          `json:"client"`
	Total    decimal.Decimal `json:"total"`
	Products int             `json:"products"`
	Discount decimal.Decimal `json:"discount"`
}

// HistoryStats são as estatísticas do histórico
type HistoryStats struct {
	Stats
	TopProducts []ProductRank `json:"top_products"`
}

// History é o histórico de vendas de um período
type History struct {
	Period Period       `json:"period"`
	Stats  HistoryStats `json:"stats"`
	Sales  []SaleRow    `json:"sales"`
}

// Dashboard resume o dia e a semana correntes
type Dashboard struct {
	Today           Stats         `json:"today"`
	Week            Stats         `json:"week"`
	TopProductsWeek []ProductRank `json:"top_products_week"`
}

// Insights é o snapshot numérico dos últimos dias
type Insights struct {
	Period           Period           `json:"period"`
	TotalSales       decimal.Decimal  `json:"total_sales"`
	TransactionCount int              `json:"transaction_count"`
	AverageTicket    decimal.Decimal  `json:"average_ticket"`
	GrowthPercentage *decimal.Decimal `json:"growth_percentage,omitempty"`
	TopProducts      []ProductRank    `json:"top_products"`
	BestWeekday      *string          `json:"best_weekday,omitempty"`
}

// Service monta os relatórios de vendas
type Service struct {
	reader Reader
	cache  Cache
	loc    *time.Location
	now    func() time.Time
	logger logger.Logger
	group  singleflight.Group
}

// NewService cria uma nova instância de Service. cache pode ser nil.
func NewService(reader Reader, cache Cache, loc *time.Location, now func() time.Time, log logger.Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &Service{reader: reader, cache: cache, loc: loc, now: now, logger: log}
}

// Location retorna o fuso de relatório
func (s *Service) Location() *time.Location {
	return s.loc
}

func (s *Service) load(ctx context.Context, tenantID string, p Period) ([]*sale.Sale, error) {
	sales, err := s.reader.FindInRange(ctx, tenantID, p.From, p.To)
	if err != nil {
		return nil, failure.Persistence("buscar vendas do período", err)
	}
	return sales, nil
}

// History retorna as vendas do período com estatísticas e o top 3
func (s *Service) History(ctx context.Context, tenantID string, f Filter) (*History, error) {
	p, err := ResolvePeriod(f, s.now(), s.loc)
	if err != nil {
		return nil, err
	}
	sales, err := s.load(ctx, tenantID, p)
	if err != nil {
		return nil, err
	}

	rows := make([]SaleRow, 0, len(sales))
	for _, sl := range sales {
		rows = append(rows, SaleRow{
			ID:       sl.ID,
			Date:     sl.CreatedAt,
			Client:   sl.ClientName(),
			Total:    sl.Total,
			Products: len(sl.Items),
			Discount: sl.Discount,
		})
	}

	return &History{
		Period: p,
		Stats: HistoryStats{
			Stats:       ComputeStats(sales),
			TopProducts: TopProducts(sales, DashboardTopLimit),
		},
		Sales: rows,
	}, nil
}

// TopProducts retorna o ranking do período. limit <= 0 usa DefaultTopLimit.
func (s *Service) TopProducts(ctx context.Context, tenantID string, f Filter, limit int) ([]ProductRank, error) {
	if limit <= 0 {
		limit = DefaultTopLimit
	}
	p, err := ResolvePeriod(f, s.now(), s.loc)
	if err != nil {
		return nil, err
	}
	sales, err := s.load(ctx, tenantID, p)
	if err != nil {
		return nil, err
	}
	return TopProducts(sales, limit), nil
}

// Dashboard retorna as estatísticas de hoje e da semana e o top 3 da semana
func (s *Service) Dashboard(ctx context.Context, tenantID string) (*Dashboard, error) {
	now := s.now()
	key := s.cacheKey(tenantID, "dashboard", now)

	var out Dashboard
	err := s.cached(ctx, key, &out, func() (interface{}, error) {
		today, _ := ResolvePeriod(Filter{Period: PeriodDaily}, now, s.loc)
		week, _ := ResolvePeriod(Filter{Period: PeriodWeekly}, now, s.loc)

		// a semana sempre contém o dia corrente
		weekSales, err := s.load(ctx, tenantID, week)
		if err != nil {
			return nil, err
		}
		todaySales := make([]*sale.Sale, 0)
		for _, sl := range weekSales {
			if today.Contains(sl.CreatedAt) {
				todaySales = append(todaySales, sl)
			}
		}
		return &Dashboard{
			Today:           ComputeStats(todaySales),
			Week:            ComputeStats(weekSales),
			TopProductsWeek: TopProducts(weekSales, DashboardTopLimit),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Activity retorna a série dos últimos 30 dias, incluindo hoje
func (s *Service) Activity(ctx context.Context, tenantID string) ([]DayBucket, error) {
	now := s.now()
	key := s.cacheKey(tenantID, "activity", now)

	var out []DayBucket
	err := s.cached(ctx, key, &out, func() (interface{}, error) {
		window := ActivityWindow(now, s.loc, ActivityDays)
		sales, err := s.load(ctx, tenantID, window)
		if err != nil {
			return nil, err
		}
		return DailyActivity(sales, window, s.loc), nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Insights compara os últimos 30 dias com os 30 anteriores
func (s *Service) Insights(ctx context.Context, tenantID string) (*Insights, error) {
	now := s.now()
	current := ActivityWindow(now, s.loc, InsightDays)
	previous := Period{From: current.From.AddDate(0, 0, -InsightDays), To: current.From, Type: PeriodCustom}

	sales, err := s.load(ctx, tenantID, current)
	if err != nil {
		return nil, err
	}
	before, err := s.load(ctx, tenantID, previous)
	if err != nil {
		return nil, err
	}

	st := ComputeStats(sales)
	out := &Insights{
		Period:           current,
		TotalSales:       st.TotalSales,
		TransactionCount: st.TransactionCount,
		AverageTicket:    AverageTicket(st),
		TopProducts:      TopProducts(sales, DefaultTopLimit),
	}
	if g, ok := Growth(st.TotalSales, ComputeStats(before).TotalSales); ok {
		out.GrowthPercentage = &g
	}
	if day, ok := BestWeekday(sales, s.loc); ok {
		name := WeekdayName(day)
		out.BestWeekday = &name
	}
	return out, nil
}

// SaleCommitted descarta os relatórios em cache do tenant
func (s *Service) SaleCommitted(ctx context.Context, committed *sale.Sale) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, fmt.Sprintf("%s:*", committed.TenantID)); err != nil {
		s.logger.Warn("erro ao invalidar cache de métricas", "tenant_id", committed.TenantID, "error", err)
	}
}

func (s *Service) cacheKey(tenantID, report string, now time.Time) string {
	return fmt.Sprintf("%s:%s:%s", tenantID, report, now.In(s.loc).Format(time.DateOnly))
}

// cached implementa cache-aside com singleflight. dest recebe o valor do
// cache ou o resultado de compute.
func (s *Service) cached(ctx context.Context, key string, dest interface{}, compute func() (interface{}, error)) error {
	if s.cache != nil {
		found, err := s.cache.Get(ctx, key, dest)
		if err != nil {
			s.logger.Warn("erro ao ler cache de métricas", "key", key, "error", err)
		}
		if found {
			return nil
		}
	}

	val, err, _ := s.group.Do(key, compute)
	if err != nil {
		return err
	}

	if err := assign(dest, val); err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, val); err != nil {
			s.logger.Warn("erro ao gravar cache de métricas", "key", key, "error", err)
		}
	}
	return nil
}

func assign(dest, val interface{}) error {
	switch d := dest.(type) {
	case *Dashboard:
		*d = *val.(*Dashboard)
	case *[]DayBucket:
		*d = val.([]DayBucket)
	default:
		return fmt.Errorf("tipo de relatório não suportado: %T", dest)
	}
	return nil
}

var weekdayNames = [...]string{"Domingo", "Segunda-feira", "Terça-feira", "Quarta-feira", "Quinta-feira", "Sexta-feira", "Sábado"}

// WeekdayName retorna o nome do dia da semana em português
func WeekdayName(d time.Weekday) string {
	return weekdayNames[d]
}
