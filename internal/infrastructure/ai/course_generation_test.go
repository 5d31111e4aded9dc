package ai

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"furari/internal/domain/model"
)

func testCandidates(n int) []*model.POI {
	var pois []*model.POI
	for i := 0; i < n; i++ {
		pois = append(pois, &model.POI{
			ID:       fmt.Sprintf("poi-%d", i),
			Name:     fmt.Sprintf("スポット%d", i),
			Location: &model.LatLng{Lat: 35.0 + 0.001*float64(i), Lng: 135.7},
			Category: model.CategoryHistory,
			Tags:     map[string]string{"historic": "temple"},
		})
	}
	return pois
}

func newTestRepo() *geminiCourseRepository {
	return &geminiCourseRepository{rng: rand.New(rand.NewSource(1))}
}

func TestExtractJSONArray(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "配列のみ",
			content: `[{"id": "nature"}]`,
			want:    `[{"id": "nature"}]`,
		},
		{
			name:    "コードフェンスと前置き付き",
			content: "以下がコースです。\n```json\n[{\"id\": \"nature\"}]\n```\n以上です。",
			want:    `[{"id": "nature"}]`,
		},
		{
			name:    "配列がないと空文字列",
			content: "コースを作成できませんでした。",
			want:    "",
		},
		{
			name:    "閉じ括弧が先行していると空文字列",
			content: "] こわれた出力 [",
			want:    "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, extractJSONArray(tc.content))
		})
	}
}

func TestParseCourses(t *testing.T) {
	candidates := testCandidates(5)

	t.Run("番号をスポットに復元する", func(t *testing.T) {
		content := `[
			{
				"id": "time_travel",
				"title": "歴史旅コース",
				"theme": "🕰️ Time Travel: 時代を感じる歴史旅",
				"description": "歴史を巡る散歩です。",
				"total_time_minutes": 150,
				"spots": [
					{"index": 0, "stay_time_minutes": 45, "reason": "静かな名刹です。"},
					{"index": 2, "stay_time_minutes": 45, "reason": "眺めが見事です。"}
				]
			}
		]`

		courses, err := newTestRepo().parseCourses(content, candidates, 180)

		require.NoError(t, err)
		require.Len(t, courses, 1)
		course := courses[0]
		assert.Equal(t, "time_travel", course.ID)
		assert.Equal(t, "歴史旅コース", course.Title)
		assert.Equal(t, 150, course.TotalTimeMinutes)
		require.Len(t, course.Spots, 2)
		assert.Equal(t, "poi-0", course.Spots[0].ID)
		assert.Equal(t, "poi-2", course.Spots[1].ID)
		assert.Greater(t, course.TotalDistanceMeters, 0)
	})

	t.Run("おすすめ理由はコピーのタグに付与され元は汚さない", func(t *testing.T) {
		content := `[{"id": "time_travel", "spots": [{"index": 1, "reason": "穴場です。"}]}]`

		courses, err := newTestRepo().parseCourses(content, candidates, 180)

		require.NoError(t, err)
		require.Len(t, courses, 1)
		spot := courses[0].Spots[0]
		assert.Equal(t, "穴場です。", spot.Tag(model.TagDescription))
		assert.Equal(t, "temple", spot.Tag("historic"), "元のタグは保持される")
		assert.False(t, candidates[1].HasTag(model.TagDescription), "候補側のタグバッグは変更しない")
	})

	t.Run("不正な番号は読み飛ばす", func(t *testing.T) {
		content := `[
			{"id": "time_travel", "spots": [
				{"index": -1}, {"index": 99}, {"index": 3}
			]}
		]`

		courses, err := newTestRepo().parseCourses(content, candidates, 180)

		require.NoError(t, err)
		require.Len(t, courses, 1)
		require.Len(t, courses[0].Spots, 1)
		assert.Equal(t, "poi-3", courses[0].Spots[0].ID)
	})

	t.Run("スポット0件のコースは捨てる", func(t *testing.T) {
		content := `[
			{"id": "time_travel", "spots": [{"index": 99}]},
			{"id": "nature", "spots": [{"index": 0}]}
		]`

		courses, err := newTestRepo().parseCourses(content, candidates, 180)

		require.NoError(t, err)
		require.Len(t, courses, 1)
		assert.Equal(t, "nature", courses[0].ID)
	})

	t.Run("欠けたフィールドはテーマカタログで補完する", func(t *testing.T) {
		content := `[{"id": "nature", "spots": [{"index": 0}]}]`

		courses, err := newTestRepo().parseCourses(content, candidates, 180)

		require.NoError(t, err)
		require.Len(t, courses, 1)
		theme, ok := model.ThemeByID("nature")
		require.True(t, ok)
		assert.Equal(t, theme.Title(), courses[0].Title)
		assert.Equal(t, theme.Label, courses[0].Theme)
		assert.Equal(t, theme.Description, courses[0].Description)
	})

	t.Run("合計時間が範囲外なら予算値に丸める", func(t *testing.T) {
		content := `[{"id": "nature", "total_time_minutes": 9999, "spots": [{"index": 0}]}]`

		courses, err := newTestRepo().parseCourses(content, candidates, 180)

		require.NoError(t, err)
		require.Len(t, courses, 1)
		assert.Equal(t, 180, courses[0].TotalTimeMinutes)
	})

	t.Run("JSONが壊れているとエラー", func(t *testing.T) {
		_, err := newTestRepo().parseCourses(`[{"id": `, testCandidates(2), 180)
		require.Error(t, err)
	})

	t.Run("JSON配列がないとエラー", func(t *testing.T) {
		_, err := newTestRepo().parseCourses("すみません、生成できません。", testCandidates(2), 180)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JSON配列を抽出できませんでした")
	})
}

func TestBuildCoursePrompt(t *testing.T) {
	candidates := testCandidates(3)
	prompt := newTestRepo().buildCoursePrompt(candidates, 180)

	assert.Contains(t, prompt, "0: スポット0 (history)")
	assert.Contains(t, prompt, "2: スポット2 (history)")
	assert.Contains(t, prompt, "180分")
	assert.Contains(t, prompt, "最大2件まで", "180分の食事上限は2件")
	assert.Contains(t, prompt, "JSON配列")
	assert.Equal(t, model.ThemesPerBatch, strings.Count(prompt, "テーマ「"))
}
