package service

import (
	"math/rand"
	"time"

	"furari/internal/domain/helper"
	"furari/internal/domain/model"
)

// CourseGeneratorService は決定的なコース生成エンジン
// 中心座標・POIプール・時間予算から、テーマの異なる複数の散歩コースを生成する
// I/Oを持たない同期・単一スレッドの純粋な処理であり、AI生成が使えない場合の
// フォールバックとしても使われる
type CourseGeneratorService interface {
	GenerateCourses(center model.LatLng, pool []*model.POI, durationMinutes int) []*model.Course
}

type courseGeneratorService struct {
	rng *rand.Rand
}

// NewCourseGeneratorService は本番用のエンジンを作成する（バッチごとに時刻シード）
func NewCourseGeneratorService() CourseGeneratorService {
	return NewCourseGeneratorServiceWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewCourseGeneratorServiceWithRand は乱数源を注入してエンジンを作成する
// テストでは固定シードを渡すことで出力を再現できる
func NewCourseGeneratorServiceWithRand(rng *rand.Rand) CourseGeneratorService {
	return &courseGeneratorService{rng: rng}
}

// GenerateCourses はテーマ選出→候補フィルタ→ルート構築→使用済み記録を
// テーマごとに順番に実行し、空でないコースのみを選出順で返す
// 使用済みIDの集合は1バッチ内でのみ共有し、バッチ間には持ち越さない
func (s *courseGeneratorService) GenerateCourses(center model.LatLng, pool []*model.POI, durationMinutes int) []*model.Course {
	themes := s.selectThemes()
	usedIDs := make(map[string]struct{})

	var courses []*model.Course
	for _, theme := range themes {
		candidates := filterCandidates(pool, theme, usedIDs)

		course := s.buildCourse(center, theme, candidates, durationMinutes)
		if course == nil {
			// 候補不足や時間制約でコースが成立しなかったテーマは黙って落とす
			continue
		}

		for _, spot := range course.Spots {
			usedIDs[spot.ID] = struct{}{}
		}
		courses = append(courses, course)
	}

	return courses
}

// selectThemes はカタログからThemesPerBatch件のテーマを重複なしランダムに選出する
// 呼び出しごとに再抽選する（バッチをまたぐキャッシュはしない）
func (s *courseGeneratorService) selectThemes() []model.Theme {
	catalog := model.ThemeCatalog()
	s.rng.Shuffle(len(catalog), func(i, j int) {
		catalog[i], catalog[j] = catalog[j], catalog[i]
	})
	n := model.ThemesPerBatch
	if n > len(catalog) {
		n = len(catalog)
	}
	return catalog[:n]
}

// filterCandidates はテーマと使用済みIDの集合から候補プールを絞り込む
// 候補がMinThemeCandidates件に満たない場合は段階的に条件を緩和する:
//  1. 厳密: テーマ述語に一致 かつ 未使用
//  2. プール緩和: テーマを無視して未使用のPOI全て
//  3. 強制再利用: 使用済みでもテーマ述語に一致するPOI（最終手段）
// テーマが狭いだけでルート構築が飢餓状態になるのを防ぐ意図的なトレードオフで、
// 退化したプールではテーマの純度が犠牲になる
func filterCandidates(pool []*model.POI, theme model.Theme, usedIDs map[string]struct{}) []*model.POI {
	isUsed := func(p *model.POI) bool {
		_, ok := usedIDs[p.ID]
		return ok
	}

	var candidates []*model.POI
	for _, p := range pool {
		if theme.Matches(p) && !isUsed(p) {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) >= model.MinThemeCandidates {
		return candidates
	}

	candidates = candidates[:0]
	for _, p := range pool {
		if !isUsed(p) {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) >= model.MinThemeCandidates {
		return candidates
	}

	candidates = candidates[:0]
	for _, p := range pool {
		if theme.Matches(p) {
			candidates = append(candidates, p)
		}
	}
	return candidates
}

// buildCourse は貪欲な最近傍法で1本のコースを組み立てる
// 現在地から最も近い候補を提案し、食事上限と時間予算（10%超過許容）を満たせば
// 採用して現在地を進める。満たさない場合はその候補だけを除いて次点を試す
// 採用0件ならコース不成立としてnilを返す
func (s *courseGeneratorService) buildCourse(center model.LatLng, theme model.Theme, candidates []*model.POI, durationMinutes int) *model.Course {
	available := helper.Shuffle(s.rng, helper.FilterRoutable(candidates))

	currentLoc := center
	timeUsed := 0.0
	distUsed := 0.0
	diningCount := 0
	diningCap := model.DiningCapForDuration(durationMinutes)
	budget := float64(durationMinutes)
	var spots []*model.POI

	for timeUsed < budget && len(spots) < model.MaxSpotsPerCourse && len(available) > 0 {
		// ジグザグ移動を避けるため、毎回現在地からの距離で並べ直す
		// 全候補の再ソートはO(n^2 log n)だが規模が小さいため単純さを優先している
		// （k-d木等に置き換えるとタイブレークが変わるので安易に最適化しない）
		helper.SortByDistanceFromLocation(currentLoc, available)

		next := available[0]
		dist := helper.DistanceMetersPOI(currentLoc, next)
		walkTime := dist / model.WalkSpeedMetersPerMinute
		stayTime := model.StayMinutesForCategory(next.Category)

		// 食事上限チェック: 緩和ルールで候補が全てグルメでも上限は破らない
		skip := next.Category == model.CategoryGourmet && diningCount >= diningCap

		if !skip && timeUsed+walkTime+stayTime <= budget*model.CourseOverrunFactor {
			spots = append(spots, next)
			timeUsed += walkTime + stayTime
			distUsed += dist
			if next.Category == model.CategoryGourmet {
				diningCount++
			}
			currentLoc = next.ToLatLng()
			// 採用したスポットはこのコース内で二度と候補にしない
			available = helper.RemovePOIByID(available, next.ID)
		} else {
			// 不採用は先頭だけ落とし、次に近い候補を次の反復で試す
			available = available[1:]
		}
	}

	if len(spots) == 0 {
		return nil
	}

	return &model.Course{
		ID:                  theme.ID,
		Title:               theme.Title(),
		Description:         theme.Description,
		Theme:               theme.Label,
		Spots:               spots,
		TotalTimeMinutes:    int(timeUsed + 0.5),
		TotalDistanceMeters: int(distUsed + 0.5),
	}
}
