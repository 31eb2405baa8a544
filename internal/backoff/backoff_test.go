package backoff

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDelayFor(t *testing.T) {
	tests := []struct {
		tries     int
		want      time.Duration
		exhausted bool
	}{
		{tries: 0, want: 0},
		{tries: 1, want: 15 * time.Minute},
		{tries: 2, want: time.Hour},
		{tries: 3, want: 6 * time.Hour},
		{tries: 4, want: 24 * time.Hour},
		{tries: 5, exhausted: true},
		{tries: 6, exhausted: true},
		{tries: 100, exhausted: true},
		{tries: -1, exhausted: true},
	}

	for _, tt := range tests {
		delay, ok := DelayFor(tt.tries)
		if tt.exhausted {
			assert.False(t, ok, "tries=%d should be exhausted", tt.tries)
		} else {
			assert.True(t, ok, "tries=%d should have a delay", tt.tries)
			assert.Equal(t, tt.want, delay, "tries=%d", tt.tries)
		}
	}
}

func TestIsEligible(t *testing.T) {
	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		tries int
		now   time.Time
		want  bool
	}{
		{
			name:  "fresh job is immediately eligible",
			tries: 0,
			now:   createdAt,
			want:  true,
		},
		{
			name:  "one miss waits fifteen minutes",
			tries: 1,
			now:   createdAt.Add(14 * time.Minute),
			want:  false,
		},
		{
			name:  "one miss eligible at exactly fifteen minutes",
			tries: 1,
			now:   createdAt.Add(15 * time.Minute),
			want:  true,
		},
		{
			name:  "four misses waits a day",
			tries: 4,
			now:   createdAt.Add(23 * time.Hour),
			want:  false,
		},
		{
			name:  "four misses eligible after a day",
			tries: 4,
			now:   createdAt.Add(25 * time.Hour),
			want:  true,
		},
		{
			name:  "exhausted job is never eligible",
			tries: 5,
			now:   createdAt.Add(1000 * time.Hour),
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsEligible(tt.tries, createdAt, tt.now))
		})
	}
}
