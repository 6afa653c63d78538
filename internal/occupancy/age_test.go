package occupancy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAgeYears(t *testing.T) {
	at := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		birth time.Time
		want  int
	}{
		{"birthday today", time.Date(2006, 6, 15, 0, 0, 0, 0, time.UTC), 18},
		{"birthday tomorrow", time.Date(2006, 6, 16, 0, 0, 0, 0, time.UTC), 17},
		{"birthday yesterday", time.Date(2006, 6, 14, 0, 0, 0, 0, time.UTC), 18},
		{"earlier month", time.Date(2006, 2, 1, 0, 0, 0, 0, time.UTC), 18},
		{"later month", time.Date(2006, 11, 1, 0, 0, 0, 0, time.UTC), 17},
		{"well over", time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC), 44},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ageYears(tt.birth, at))
		})
	}
}

func TestDateOnly(t *testing.T) {
	loc := time.UTC
	late := time.Date(2024, 6, 15, 23, 59, 59, 0, loc)
	early := time.Date(2024, 6, 15, 0, 0, 1, 0, loc)

	assert.Equal(t, dateOnly(late, loc), dateOnly(early, loc))
	assert.True(t, dateOnly(late.AddDate(0, 0, 1), loc).After(dateOnly(late, loc)))
}
