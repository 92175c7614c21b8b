package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDurationMinutes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"число с единицей", "90 minutes", 90},
		{"просто число", "45", 45},
		{"лишние пробелы", "  120 min  ", 120},
		{"дробное - fallback", "1.5 hours", DefaultServiceDurationMinutes},
		{"текст без числа - fallback", "about an hour", DefaultServiceDurationMinutes},
		{"пустая строка - fallback", "", DefaultServiceDurationMinutes},
		{"отрицательное - fallback", "-30 minutes", DefaultServiceDurationMinutes},
		{"ноль - fallback", "0", DefaultServiceDurationMinutes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDurationMinutes(tt.raw))
		})
	}
}

func TestDurationIndex(t *testing.T) {
	services := []*Service{
		{Name: "Box Braids", DurationMinutes: 240},
		{Name: "Cornrows", DurationMinutes: 90},
	}
	idx := BuildDurationIndex(services)

	assert.Equal(t, 240, idx.Resolve("Box Braids"))
	assert.Equal(t, 90, idx.Resolve("Cornrows"))

	// Неизвестная услуга (например, переименованная) получает длительность по умолчанию
	assert.Equal(t, DefaultServiceDurationMinutes, idx.Resolve("Knotless Braids"))
}
