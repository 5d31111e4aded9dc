package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"furari/internal/domain/helper"
	"furari/internal/domain/model"
	"furari/internal/domain/repository"
)

// geminiCourseRepository はGemini APIを使用してCourseGenerationRepositoryを実装
// 決定的エンジンと同じテーマカタログ・食事上限・重複禁止ルールをプロンプトに埋め込み、
// 同じCourse形状の出力を返す
type geminiCourseRepository struct {
	client *GeminiClient
	rng    *rand.Rand
}

// NewGeminiCourseRepository は新しいgeminiCourseRepositoryインスタンスを作成
func NewGeminiCourseRepository(client *GeminiClient) repository.CourseGenerationRepository {
	return &geminiCourseRepository{
		client: client,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// GenerateCourses はGemini APIでテーマ別コースを生成する
// 失敗・パース不能・0件はエラーとして返し、フォールバックの判断は呼び出し側に委ねる
func (g *geminiCourseRepository) GenerateCourses(ctx context.Context, center model.LatLng, candidates []*model.POI, durationMinutes int) ([]*model.Course, error) {
	usable := helper.FilterRoutable(candidates)
	if len(usable) == 0 {
		return nil, fmt.Errorf("AI生成に使える候補スポットがありません")
	}

	prompt := g.buildCoursePrompt(usable, durationMinutes)

	log.Printf("🤖 Gemini APIでコースを生成中... (候補%d件)", len(usable))
	content, err := g.client.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("Gemini API呼び出しエラー: %w", err)
	}

	courses, err := g.parseCourses(content, usable, durationMinutes)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ AI生成完了 (%d件)", len(courses))
	return courses, nil
}

// buildCoursePrompt はコース生成用プロンプトを構築する
// テーマは決定的エンジンと共通のカタログから5件をランダム選出する
func (g *geminiCourseRepository) buildCoursePrompt(candidates []*model.POI, durationMinutes int) string {
	lines := make([]string, 0, len(candidates))
	for i, p := range candidates {
		lines = append(lines, fmt.Sprintf("%d: %s (%s)", i, p.Name, p.Category))
	}

	catalog := model.ThemeCatalog()
	g.rng.Shuffle(len(catalog), func(i, j int) {
		catalog[i], catalog[j] = catalog[j], catalog[i]
	})
	n := model.ThemesPerBatch
	if n > len(catalog) {
		n = len(catalog)
	}
	themeLines := make([]string, 0, n)
	for i, t := range catalog[:n] {
		themeLines = append(themeLines, fmt.Sprintf("  コース%d: テーマ「%s」(id: %s) に厳密に従うこと", i+1, t.Label, t.ID))
	}

	maxDining := model.DiningCapForDuration(durationMinutes)

	// TODO: プロンプト調整
	return fmt.Sprintf(`あなたは散歩コースの一流コンシェルジュです。
出発地点から%d分で歩いて回れる、テーマの異なる%d本のモデルコースを作成してください。

【候補スポット一覧 (番号: 名前 (カテゴリ))】
%s

【各コースのテーマ】
%s

【必須制約】
- 食事系 (gourmetカテゴリ) のスポットは1コースあたり最大%d件まで
- あるコースで使ったスポットを別のコースで使ってはいけない
- スポットは候補一覧の番号 (0, 1, 2...) で正確に指定すること
- 1コースのスポット数は最大%d件まで
- 丁寧な日本語 (です・ます調) で記述すること

【出力フォーマット】
最後に必ず次のJSON配列のみを出力してください:
[
  {
    "id": "テーマid",
    "title": "テーマ名を含むタイトル",
    "theme": "割り当てられたテーマ文字列",
    "description": "コースの説明 (日本語)",
    "total_time_minutes": 180,
    "spots": [
      { "index": 12, "stay_time_minutes": 45, "reason": "おすすめ理由" }
    ]
  }
]`,
		durationMinutes,
		n,
		strings.Join(lines, "\n"),
		strings.Join(themeLines, "\n"),
		maxDining,
		model.MaxSpotsPerCourse,
	)
}

// parseCourses は生成テキストからJSON配列を抽出し、候補リストと突き合わせて
// Courseに復元する。不正な番号のスポットは読み飛ばし、スポット0件のコースは捨てる
func (g *geminiCourseRepository) parseCourses(content string, candidates []*model.POI, durationMinutes int) ([]*model.Course, error) {
	jsonStr := extractJSONArray(content)
	if jsonStr == "" {
		return nil, fmt.Errorf("生成テキストからJSON配列を抽出できませんでした")
	}

	var raw []aiCourse
	if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
		return nil, fmt.Errorf("生成されたJSONのパースに失敗: %w", err)
	}

	var courses []*model.Course
	for _, rc := range raw {
		var spots []*model.POI
		totalDist := 0.0
		for _, rs := range rc.Spots {
			if rs.Index < 0 || rs.Index >= len(candidates) {
				log.Printf("⚠️ AIが不正なスポット番号を返しました: %d", rs.Index)
				continue
			}
			original := candidates[rs.Index]
			spot := *original
			if rs.Reason != "" {
				// 元のタグバッグを汚さないようコピーに説明を付与する
				tags := make(map[string]string, len(original.Tags)+1)
				for k, v := range original.Tags {
					tags[k] = v
				}
				tags[model.TagDescription] = rs.Reason
				spot.Tags = tags
			}
			if len(spots) > 0 {
				totalDist += helper.DistanceMeters(spots[len(spots)-1].ToLatLng(), spot.ToLatLng())
			}
			spots = append(spots, &spot)
		}
		if len(spots) == 0 {
			continue
		}

		title := rc.Title
		themeLabel := rc.Theme
		description := rc.Description
		if theme, ok := model.ThemeByID(rc.ID); ok {
			if themeLabel == "" {
				themeLabel = theme.Label
			}
			if description == "" {
				description = theme.Description
			}
			if title == "" {
				title = theme.Title()
			}
		}

		totalTime := rc.TotalTimeMinutes
		if totalTime <= 0 || totalTime > int(float64(durationMinutes)*model.CourseOverrunFactor) {
			totalTime = durationMinutes
		}

		courses = append(courses, &model.Course{
			ID:                  rc.ID,
			Title:               title,
			Description:         description,
			Theme:               themeLabel,
			Spots:               spots,
			TotalTimeMinutes:    totalTime,
			TotalDistanceMeters: int(totalDist + 0.5),
		})
	}

	return courses, nil
}

// extractJSONArray はテキスト中の最初の'['から最後の']'までを取り出す
// コードフェンスや前置きの説明文が混ざっても配列だけを拾えるようにする
func extractJSONArray(content string) string {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start < 0 || end < 0 || end <= start {
		return ""
	}
	return content[start : end+1]
}

// --- 生成JSONをパースするための構造体 ---

type aiCourse struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Theme            string   `json:"theme"`
	Description      string   `json:"description"`
	TotalTimeMinutes int      `json:"total_time_minutes"`
	Spots            []aiSpot `json:"spots"`
}

type aiSpot struct {
	Index           int    `json:"index"`
	StayTimeMinutes int    `json:"stay_time_minutes"`
	Reason          string `json:"reason"`
}
