package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeCatalog(t *testing.T) {
	catalog := ThemeCatalog()

	t.Run("テーマ数は選出数より十分に多い", func(t *testing.T) {
		assert.GreaterOrEqual(t, len(catalog), 15)
		assert.Greater(t, len(catalog), ThemesPerBatch)
	})

	t.Run("IDは一意で述語が設定されている", func(t *testing.T) {
		ids := make(map[string]struct{})
		for _, theme := range catalog {
			_, dup := ids[theme.ID]
			assert.False(t, dup, "テーマID %s が重複", theme.ID)
			ids[theme.ID] = struct{}{}
			assert.NotEmpty(t, theme.Label)
			assert.NotEmpty(t, theme.Description)
			assert.NotNil(t, theme.Matches, "テーマ %s に述語がない", theme.ID)
		}
	})

	t.Run("呼び出しごとに独立したスライスを返す", func(t *testing.T) {
		other := ThemeCatalog()
		other[0], other[len(other)-1] = other[len(other)-1], other[0]
		assert.NotEqual(t, other[0].ID, ThemeCatalog()[0].ID)
	})
}

func TestThemeMatches(t *testing.T) {
	history := &POI{ID: "h", Category: CategoryHistory, RatingCount: 200}
	gourmet := &POI{ID: "g", Category: CategoryGourmet, RatingCount: 200}
	nature := &POI{ID: "n", Category: CategoryNature, RatingCount: 200}
	hidden := &POI{ID: "x", Category: CategoryOther, RatingCount: 3}
	photogenic := &POI{ID: "p", Category: CategoryOther, RatingCount: 200,
		Tags: map[string]string{TagPhoto: "yes"}}

	cases := []struct {
		themeID string
		poi     *POI
		want    bool
	}{
		{"time_travel", history, true},
		{"time_travel", gourmet, false},
		{"nature", nature, true},
		{"nature", history, false},
		{"gourmet", gourmet, true},
		{"gourmet", nature, false},
		{"hidden", hidden, true},
		{"hidden", history, false},
		{"photo", photogenic, true},
		{"photo", nature, true},
		{"photo", gourmet, false},
		{"spiritual", history, true},
		{"urban", gourmet, true},
	}

	for _, tc := range cases {
		theme, ok := ThemeByID(tc.themeID)
		require.True(t, ok, "テーマ %s が存在しない", tc.themeID)
		assert.Equal(t, tc.want, theme.Matches(tc.poi),
			"テーマ %s × POI %s", tc.themeID, tc.poi.ID)
	}
}

func TestThemeByID(t *testing.T) {
	theme, ok := ThemeByID("gourmet")
	require.True(t, ok)
	assert.Equal(t, "gourmet", theme.ID)

	_, ok = ThemeByID("unknown")
	assert.False(t, ok)
}

func TestThemeTitle(t *testing.T) {
	theme, ok := ThemeByID("time_travel")
	require.True(t, ok)
	assert.Equal(t, "時代を感じる歴史旅", theme.Title())

	noColon := Theme{Label: "そのままのラベル"}
	assert.Equal(t, "そのままのラベル", noColon.Title())
}
