package model

// CategoryConstants はPOIのカテゴリを表す閉じた列挙
const (
	CategoryGourmet  = "gourmet"
	CategoryHistory  = "history"
	CategoryArt      = "art"
	CategoryNature   = "nature"
	CategoryShopping = "shopping"
	CategoryTourism  = "tourism"
	CategoryOther    = "other"
)

// TagConstants は表示用タグバッグのうちエンジンが参照するキー
const (
	TagPhoto        = "photo"
	TagDescription  = "description"
	TagOpeningHours = "opening_hours"
)

// コース生成エンジンのパラメータ
// 値はいずれもチューニング済みという保証はない。商品レビュー時に再検討すること
const (
	// WalkSpeedMetersPerMinute 徒歩の移動速度 (m/分)
	WalkSpeedMetersPerMinute = 80.0

	// MaxSpotsPerCourse 1コースあたりのスポット数上限
	MaxSpotsPerCourse = 8

	// CourseOverrunFactor 最後のスポットを収めるための時間超過許容率（10%）
	CourseOverrunFactor = 1.1

	// ThemesPerBatch 1回の生成で選出するテーマ数
	ThemesPerBatch = 5

	// MinThemeCandidates テーマ別フィルタの結果がこれを下回ると緩和ルールに進む
	MinThemeCandidates = 3

	// HiddenGemMaxRatingCount これ未満の評価件数のスポットを「穴場」とみなす
	HiddenGemMaxRatingCount = 50
)

// カテゴリ別の滞在時間 (分)
const (
	StayMinutesGourmet = 60
	StayMinutesHistory = 45
	StayMinutesArt     = 45
	StayMinutesNature  = 40
	StayMinutesDefault = 30
)

// StayMinutesForCategory カテゴリに応じた滞在時間を返す
func StayMinutesForCategory(category string) float64 {
	switch category {
	case CategoryGourmet:
		return StayMinutesGourmet
	case CategoryHistory:
		return StayMinutesHistory
	case CategoryArt:
		return StayMinutesArt
	case CategoryNature:
		return StayMinutesNature
	default:
		return StayMinutesDefault
	}
}

// DiningCapForDuration 所要時間に応じた食事系スポット数の上限を返す
// 90分以下なら1軒、300分以下なら2軒（昼食+カフェ等）、それ以上は3軒
func DiningCapForDuration(durationMinutes int) int {
	switch {
	case durationMinutes <= 90:
		return 1
	case durationMinutes <= 300:
		return 2
	default:
		return 3
	}
}

// AllCategories は全カテゴリの一覧を取得する
func AllCategories() []string {
	return []string{
		CategoryGourmet,
		CategoryHistory,
		CategoryArt,
		CategoryNature,
		CategoryShopping,
		CategoryTourism,
		CategoryOther,
	}
}
