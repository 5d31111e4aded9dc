package model

// Course 1本のテーマ付き散歩コースを表す出力単位
// Spotsが空のコースは不正であり、生成側で破棄される
type Course struct {
	ID                  string `json:"id"`                    // テーマID
	Title               string `json:"title"`                 // コースタイトル
	Description         string `json:"description"`           // コース説明
	Theme               string `json:"theme"`                 // テーマ表示名
	Spots               []*POI `json:"spots"`                 // 訪問順のスポット列
	TotalTimeMinutes    int    `json:"total_time_minutes"`    // 徒歩+滞在の合計時間
	TotalDistanceMeters int    `json:"total_distance_meters"` // 区間直線距離の合計
}

// CourseRequest コース生成APIのリクエスト
// Queryか Location のいずれかで開始地点を指定する
type CourseRequest struct {
	Query           string    `json:"query"`                                 // 地名のフリーテキスト（ジオコーディング対象）
	Location        *Location `json:"location"`                              // 座標直接指定（Queryより優先）
	RadiusMeters    int       `json:"radius_meters" validate:"required"`     // 検索半径
	DurationMinutes int       `json:"duration_minutes" validate:"required"`  // 合計時間の予算
}

// HasLocation 座標が直接指定されているかどうかを判定する
func (r *CourseRequest) HasLocation() bool {
	return r.Location != nil
}

// CourseResponse コース生成APIのレスポンス
type CourseResponse struct {
	BatchID   string   `json:"batch_id"`           // 生成バッチの一時ID
	Center    Location `json:"center"`             // 解決済みの開始地点
	Generator string   `json:"generator"`          // "ai" または "heuristic"
	Courses   []Course `json:"courses"`            // 生成されたコース一覧
}

// 生成経路の識別子
const (
	GeneratorAI        = "ai"
	GeneratorHeuristic = "heuristic"
)
