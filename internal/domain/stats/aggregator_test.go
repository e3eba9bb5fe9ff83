package stats_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/perfumeria-api/internal/domain"
	"github.com/jhoicas/perfumeria-api/internal/domain/stats"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 30, 0, 0, time.UTC)
}

func TestParseGroupBy(t *testing.T) {
	g, err := stats.ParseGroupBy("")
	require.NoError(t, err)
	assert.Equal(t, stats.GroupByDay, g)

	g, err = stats.ParseGroupBy("month")
	require.NoError(t, err)
	assert.Equal(t, stats.GroupByMonth, g)

	_, err = stats.ParseGroupBy("week")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestBucketKey(t *testing.T) {
	ts := day(2025, time.February, 7)
	assert.Equal(t, "2025-02-07", stats.BucketKey(ts, stats.GroupByDay))
	assert.Equal(t, "2025-02", stats.BucketKey(ts, stats.GroupByMonth))
}

func TestSeries_OrdenAscendente(t *testing.T) {
	s := stats.NewSeries(stats.GroupByMonth)
	s.Count(day(2025, time.March, 3))
	s.Count(day(2024, time.December, 31))
	s.Count(day(2025, time.January, 15))
	s.Add(day(2025, time.March, 20), "revenue", decimal.NewFromInt(7))
	s.Count(day(2025, time.March, 20))

	pts := s.Points()
	require.Len(t, pts, 3)
	assert.Equal(t, []string{"2024-12", "2025-01", "2025-03"}, []string{pts[0].Bucket, pts[1].Bucket, pts[2].Bucket})
	assert.Equal(t, 2, pts[2].Count)
	assert.True(t, pts[2].Sums["revenue"].Equal(decimal.NewFromInt(7)))
}

func TestBreakdown_TopDesempateAlfabetico(t *testing.T) {
	b := stats.NewBreakdown()
	b.Add("Vainilla", decimal.NewFromInt(10))
	b.Add("Ámbar", decimal.NewFromInt(10))
	b.Add("Oud", decimal.NewFromInt(10))
	b.Add("Oud", decimal.NewFromInt(1))
	b.Add("Citrus", decimal.NewFromInt(10))

	top := b.Top(3, stats.RankByCount)
	require.Len(t, top, 3)
	assert.Equal(t, "Oud", top[0].Key)
	// Mismo conteo y total: gana la clave menor.
	assert.Equal(t, "Citrus", top[1].Key)
	assert.Equal(t, "Vainilla", top[2].Key)

	byTotal := b.Top(0, stats.RankByTotal)
	require.Len(t, byTotal, 4)
	assert.Equal(t, "Oud", byTotal[0].Key)
}

func TestBreakdown_All(t *testing.T) {
	b := stats.NewBreakdown()
	b.Add("b", decimal.NewFromInt(1))
	b.Add("a", decimal.NewFromInt(5))
	all := b.All()
	assert.Equal(t, "a", all[0].Key)
	assert.Equal(t, 2, b.Len())
}
