package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		page, size int
		wantFrom   int
		wantLimit  int
	}{
		{name: "defaults", page: 0, size: 0, wantFrom: 0, wantLimit: 10},
		{name: "first page", page: 1, size: 20, wantFrom: 0, wantLimit: 20},
		{name: "third page", page: 3, size: 20, wantFrom: 40, wantLimit: 20},
		{name: "negative page", page: -2, size: 5, wantFrom: 0, wantLimit: 5},
		{name: "oversized page size", page: 2, size: 500, wantFrom: 10, wantLimit: 10},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			from, limit := Calculate(tc.page, tc.size)
			assert.Equal(t, tc.wantFrom, from)
			assert.Equal(t, tc.wantLimit, limit)
		})
	}
}
