package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStayMinutesForCategory(t *testing.T) {
	cases := []struct {
		category string
		want     float64
	}{
		{CategoryGourmet, 60},
		{CategoryHistory, 45},
		{CategoryArt, 45},
		{CategoryNature, 40},
		{CategoryShopping, 30},
		{CategoryTourism, 30},
		{CategoryOther, 30},
		{"unknown", 30},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StayMinutesForCategory(tc.category), "カテゴリ %s", tc.category)
	}
}

func TestDiningCapForDuration(t *testing.T) {
	cases := []struct {
		durationMinutes int
		want            int
	}{
		{30, 1},
		{90, 1},
		{91, 2},
		{180, 2},
		{300, 2},
		{301, 3},
		{720, 3},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DiningCapForDuration(tc.durationMinutes), "%d分", tc.durationMinutes)
	}
}

func TestAllCategories(t *testing.T) {
	categories := AllCategories()
	assert.Len(t, categories, 7)
	assert.Contains(t, categories, CategoryGourmet)
	assert.Contains(t, categories, CategoryOther)
}
