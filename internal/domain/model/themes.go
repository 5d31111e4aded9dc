package model

import "strings"

// Theme コースのテーマを表すレコード
// 決定的エンジンのフィルタとLLMプロンプトの両方がこのカタログを参照する
type Theme struct {
	ID          string
	Key         string
	Label       string // 「絵文字 Key: 日本語タイトル」形式の表示名
	Description string
	Matches     func(p *POI) bool // カテゴリ/タグに対する述語
}

// Title Labelのコロン以降（日本語タイトル部分）を取り出す
func (t Theme) Title() string {
	if _, after, found := strings.Cut(t.Label, ":"); found {
		return strings.TrimSpace(after)
	}
	return t.Label
}

func hasCategory(p *POI, categories ...string) bool {
	for _, c := range categories {
		if p.Category == c {
			return true
		}
	}
	return false
}

// ThemeCatalog は固定のテーマカタログを返す
// カタログは毎回新しいスライスとして生成されるため、呼び出し側でシャッフルしてよい
func ThemeCatalog() []Theme {
	return []Theme{
		{
			ID:          "time_travel",
			Key:         "Time Travel",
			Label:       "🕰️ Time Travel: 時代を感じる歴史旅",
			Description: "古き良き日本の風情と歴史のロマンを感じる旅。",
			Matches:     func(p *POI) bool { return hasCategory(p, CategoryHistory, CategoryArt) },
		},
		{
			ID:          "nature",
			Key:         "Nature",
			Label:       "🌿 Nature's Whisper: 静寂と緑",
			Description: "都会の喧騒を離れ、自然の中で心を癒やすひととき。",
			Matches:     func(p *POI) bool { return hasCategory(p, CategoryNature) },
		},
		{
			ID:          "urban",
			Key:         "Urban",
			Label:       "🏙️ Urban Jungle: 都会の喧騒と魅力を歩く",
			Description: "活気ある街のエネルギーと最新トレンドを体感。",
			Matches:     func(p *POI) bool { return hasCategory(p, CategoryShopping, CategoryGourmet) },
		},
		{
			ID:          "spiritual",
			Key:         "Spiritual",
			Label:       "⛩️ Spiritual Awakening: 神社仏閣とパワースポット",
			Description: "心身を清め、運気を上げるパワースポット巡り。",
			Matches:     func(p *POI) bool { return hasCategory(p, CategoryHistory) },
		},
		{
			ID:          "gourmet",
			Key:         "Gourmet",
			Label:       "🍽️ Gourmet Adventure: 美食と食べ歩き",
			Description: "地元の美味しいものを探し求める食道楽の旅。",
			Matches:     func(p *POI) bool { return hasCategory(p, CategoryGourmet) },
		},
		{
			ID:          "art",
			Key:         "Art",
			Label:       "🎨 Art & Soul: アートとクリエイティブ",
			Description: "感性を刺激するアートスポットとクリエイティブな空間。",
			Matches:     func(p *POI) bool { return hasCategory(p, CategoryArt) || p.HasTag(TagPhoto) },
		},
		{
			ID:          "hidden",
			Key:         "Hidden",
			Label:       "💎 Hidden Gems: 地元民しか知らない穴場",
			Description: "観光ガイドには載らない、知る人ぞ知る名店や旧跡。",
			Matches:     func(p *POI) bool { return p.RatingCount < HiddenGemMaxRatingCount },
		},
		{
			ID:          "photo",
			Key:         "Photo",
			Label:       "📸 Photogenic: 思わず写真を撮りたくなる風景",
			Description: "SNS映え間違いなしの美しい風景と思い出作り。",
			Matches:     func(p *POI) bool { return p.HasTag(TagPhoto) || hasCategory(p, CategoryNature, CategoryArt) },
		},
		{
			ID:          "retro",
			Key:         "Retro",
			Label:       "☕ Retro Revival: 昭和レトロな純喫茶・路地裏",
			Description: "昭和の懐かしさが漂うノスタルジックな世界へ。",
			Matches:     func(p *POI) bool { return hasCategory(p, CategoryGourmet, CategoryHistory) },
		},
		{
			ID:          "luxury",
			Key:         "Luxury",
			Label:       "✨ Luxury & Leisure: ちょっぴり贅沢な大人の休日",
			Description: "優雅な時間を過ごす、大人ならではの贅沢プラン。",
			Matches:     func(p *POI) bool { return hasCategory(p, CategoryArt, CategoryGourmet) },
		},
		{
			ID:          "mystery",
			Key:         "Mystery",
			Label:       "👻 Mystery & Legend: ちょっと怖い伝説・ミステリー",
			Description: "不思議な伝説やミステリアスな逸話が残る場所へ。",
			Matches:     func(p *POI) bool { return hasCategory(p, CategoryHistory) },
		},
		{
			ID:          "local",
			Key:         "Local",
			Label:       "🛍️ Local Life: 商店街と地元民の暮らし",
			Description: "地元に愛される商店街や日常の風景を歩く。",
			Matches:     func(p *POI) bool { return hasCategory(p, CategoryShopping, CategoryGourmet) },
		},
		{
			ID:          "architecture",
			Key:         "Arch",
			Label:       "🏛️ Architecture Walk: 名建築とユニークな建物",
			Description: "建物のデザインや構造美を楽しむ建築探訪。",
			Matches:     func(p *POI) bool { return hasCategory(p, CategoryHistory, CategoryArt) },
		},
		{
			ID:          "silence",
			Key:         "Silence",
			Label:       "🤫 Silence & Solitude: 究極の「おひとりさま」静寂",
			Description: "誰にも邪魔されず、静かに自分と向き合う時間。",
			Matches:     func(p *POI) bool { return hasCategory(p, CategoryNature, CategoryHistory) },
		},
		{
			ID:          "morning",
			Key:         "Morning",
			Label:       "🌅 Morning/Evening Glow: 朝焼け・夕焼けが美しい場所",
			Description: "光と影が織りなす美しい瞬間を捉える旅。",
			Matches:     func(p *POI) bool { return hasCategory(p, CategoryNature) || p.HasTag(TagPhoto) },
		},
	}
}

// ThemeByID テーマIDからテーマを取得する
func ThemeByID(id string) (Theme, bool) {
	for _, t := range ThemeCatalog() {
		if t.ID == id {
			return t, true
		}
	}
	return Theme{}, false
}
