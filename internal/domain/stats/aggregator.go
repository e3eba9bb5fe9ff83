// Package stats agrupa pedidos, transacciones y movimientos por periodo y dimensión
// para los gráficos del panel. Es puro: recibe registros ya cargados y no consulta la DB.
package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/perfumeria-api/internal/domain"
)

// GroupBy es la granularidad de la serie temporal.
type GroupBy string

const (
	GroupByDay   GroupBy = "day"
	GroupByMonth GroupBy = "month"
)

// ParseGroupBy acepta "day", "month" o vacío (día).
func ParseGroupBy(s string) (GroupBy, error) {
	switch GroupBy(s) {
	case "", GroupByDay:
		return GroupByDay, nil
	case GroupByMonth:
		return GroupByMonth, nil
	}
	return "", fmt.Errorf("%w: group_by debe ser day o month", domain.ErrInvalidInput)
}

// BucketKey devuelve la clave del periodo: "2006-01-02" por día, "2006-01" por mes.
// Las claves ordenan lexicográficamente igual que cronológicamente.
func BucketKey(t time.Time, g GroupBy) string {
	if g == GroupByMonth {
		return t.Format("2006-01")
	}
	return t.Format("2006-01-02")
}

// Point es un periodo de la serie: cantidad de registros y sumas nombradas.
type Point struct {
	Bucket string                     `json:"bucket"`
	Count  int                        `json:"count"`
	Sums   map[string]decimal.Decimal `json:"sums"`
}

// Series acumula puntos por periodo.
type Series struct {
	groupBy GroupBy
	points  map[string]*Point
}

// NewSeries crea una serie vacía.
func NewSeries(g GroupBy) *Series {
	return &Series{groupBy: g, points: make(map[string]*Point)}
}

func (s *Series) point(t time.Time) *Point {
	key := BucketKey(t, s.groupBy)
	p, ok := s.points[key]
	if !ok {
		p = &Point{Bucket: key, Sums: make(map[string]decimal.Decimal)}
		s.points[key] = p
	}
	return p
}

// Count suma un registro al periodo de t.
func (s *Series) Count(t time.Time) {
	s.point(t).Count++
}

// Add acumula value en la suma name del periodo de t, sin contar registro.
func (s *Series) Add(t time.Time, name string, value decimal.Decimal) {
	p := s.point(t)
	p.Sums[name] = p.Sums[name].Add(value)
}

// Points devuelve los periodos en orden ascendente estricto.
func (s *Series) Points() []Point {
	out := make([]Point, 0, len(s.points))
	for _, p := range s.points {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Bucket < out[j].Bucket })
	return out
}

// Ranked es una entrada de un desglose por dimensión.
type Ranked struct {
	Key   string          `json:"key"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// RankBy elige la métrica principal de un ranking.
type RankBy int

const (
	RankByCount RankBy = iota
	RankByTotal
)

// Breakdown acumula cantidad y total por clave (estado, categoría, ciudad, producto).
type Breakdown struct {
	items map[string]*Ranked
}

// NewBreakdown crea un desglose vacío.
func NewBreakdown() *Breakdown {
	return &Breakdown{items: make(map[string]*Ranked)}
}

// Add suma un registro con valor value bajo key.
func (b *Breakdown) Add(key string, value decimal.Decimal) {
	r, ok := b.items[key]
	if !ok {
		r = &Ranked{Key: key}
		b.items[key] = r
	}
	r.Count++
	r.Total = r.Total.Add(value)
}

// Len cantidad de claves distintas.
func (b *Breakdown) Len() int { return len(b.items) }

// All devuelve todas las claves en orden alfabético.
func (b *Breakdown) All() []Ranked {
	out := b.list()
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Top devuelve las n primeras claves por la métrica elegida, descendente.
// Empates: por la otra métrica descendente y luego por clave ascendente. n <= 0 devuelve todas.
func (b *Breakdown) Top(n int, by RankBy) []Ranked {
	out := b.list()
	sort.Slice(out, func(i, j int) bool {
		a, c := out[i], out[j]
		primary := compare(a, c, by)
		if primary != 0 {
			return primary > 0
		}
		secondary := compare(a, c, 1-by)
		if secondary != 0 {
			return secondary > 0
		}
		return a.Key < c.Key
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func (b *Breakdown) list() []Ranked {
	out := make([]Ranked, 0, len(b.items))
	for _, r := range b.items {
		out = append(out, *r)
	}
	return out
}

func compare(a, b Ranked, by RankBy) int {
	if by == RankByCount {
		switch {
		case a.Count > b.Count:
			return 1
		case a.Count < b.Count:
			return -1
		}
		return 0
	}
	return a.Total.Cmp(b.Total)
}
