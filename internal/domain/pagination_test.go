package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total int
		want  int
	}{
		{0, 0},
		{1, 1},
		{11, 1},
		{12, 1},
		{13, 2},
		{24, 2},
		{25, 3},
		{120, 10},
		{121, 11},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.total), "total=%d", tt.total)
	}
}

func TestTotalPages_MatchesCeil(t *testing.T) {
	for total := 0; total <= 500; total++ {
		want := total / PageSize
		if total%PageSize != 0 {
			want++
		}
		assert.Equal(t, want, TotalPages(total), "total=%d", total)
	}
}

func TestNormalizePage(t *testing.T) {
	assert.Equal(t, 1, NormalizePage(-5))
	assert.Equal(t, 1, NormalizePage(0))
	assert.Equal(t, 1, NormalizePage(1))
	assert.Equal(t, 7, NormalizePage(7))
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(0))
	assert.Equal(t, 0, Offset(1))
	assert.Equal(t, 12, Offset(2))
	assert.Equal(t, 36, Offset(4))
}
