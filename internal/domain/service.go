package domain

import (
	"strconv"
	"strings"
	"time"
)

// Service represents a salon service from the catalog
type Service struct {
	ID              int64
	Name            string
	Description     *string
	Price           float64
	DurationMinutes int
	IsActive        bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ParseDurationMinutes парсит длительность из свободного текста вида
// "90 minutes" или "1.5 hours" - берётся ведущий целочисленный токен.
// Используется только на границе приёма внешних данных каталога;
// внутри движка длительность всегда структурированное число минут.
// При ошибке парсинга возвращает DefaultServiceDurationMinutes
func ParseDurationMinutes(raw string) int {
	fields := strings.Fields(strings.TrimSpace(raw))
	if len(fields) == 0 {
		return DefaultServiceDurationMinutes
	}

	n, err := strconv.Atoi(fields[0])
	if err != nil || n <= 0 {
		return DefaultServiceDurationMinutes
	}

	return n
}

// DurationIndex индекс длительностей услуг по названию
// Строится из каталога для резолва ServiceType записи в минуты
type DurationIndex map[string]int

// BuildDurationIndex строит индекс по списку услуг каталога
func BuildDurationIndex(services []*Service) DurationIndex {
	idx := make(DurationIndex, len(services))
	for _, s := range services {
		idx[s.Name] = s.DurationMinutes
	}
	return idx
}

// Resolve возвращает длительность услуги по названию.
// Если услуга не найдена в каталоге (например, была переименована),
// используется DefaultServiceDurationMinutes
func (idx DurationIndex) Resolve(serviceType string) int {
	if d, ok := idx[serviceType]; ok && d > 0 {
		return d
	}
	return DefaultServiceDurationMinutes
}
