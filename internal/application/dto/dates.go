package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/perfumeria-api/internal/domain"
)

const dateLayout = "2006-01-02"

// ParseDate acepta YYYY-MM-DD (hora local, 00:00) o RFC3339. Vacío devuelve nil.
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.ParseInLocation(dateLayout, s, time.Local); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha %q (usar YYYY-MM-DD)", domain.ErrInvalidInput, s)
	}
	return &t, nil
}

// ParseDayRange interpreta from/to como días completos: to incluye hasta 23:59:59.999999999.
func ParseDayRange(from, to string) (*time.Time, *time.Time, error) {
	f, err := ParseDate(from)
	if err != nil {
		return nil, nil, err
	}
	t, err := ParseDate(to)
	if err != nil {
		return nil, nil, err
	}
	if t != nil && len(strings.TrimSpace(to)) == len(dateLayout) {
		end := t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		t = &end
	}
	if f != nil && t != nil && t.Before(*f) {
		return nil, nil, fmt.Errorf("%w: 'to' es anterior a 'from'", domain.ErrInvalidInput)
	}
	return f, t, nil
}

// StatsRange resuelve el rango de un endpoint de estadísticas; por defecto los últimos 30 días.
func StatsRange(from, to string, now time.Time) (time.Time, time.Time, error) {
	f, t, err := ParseDayRange(from, to)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end := now
	if t != nil {
		end = *t
	}
	start := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location()).AddDate(0, 0, -29)
	if f != nil {
		start = *f
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: 'to' es anterior a 'from'", domain.ErrInvalidInput)
	}
	return start, end, nil
}

// FormatDate formatea una fecha como YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}
