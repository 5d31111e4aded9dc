package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"furari/internal/domain/helper"
	"furari/internal/domain/model"
	"furari/internal/domain/repository"
	"furari/internal/domain/service"
)

// 生成に最低限必要な使用可能POI数と、LLMに渡す候補数の上限
const (
	minUsablePOIs   = 5
	maxAICandidates = 150
)

// CourseUseCase はコース生成のオーケストレーションを行う
type CourseUseCase interface {
	// GenerateCourses は開始地点を解決し、周辺POIを取得して、
	// AI生成→決定的エンジンの順でコースを生成する
	GenerateCourses(ctx context.Context, req *model.CourseRequest) (*model.CourseResponse, error)
}

type courseUseCaseImpl struct {
	geocoder    repository.Geocoder
	poiProvider repository.POIProvider
	aiRepo      repository.CourseGenerationRepository // nil可（決定的エンジンのみで動作）
	generator   service.CourseGeneratorService
	rng         *rand.Rand
}

// NewCourseUseCase は新しいCourseUseCaseインスタンスを作成
func NewCourseUseCase(
	geocoder repository.Geocoder,
	poiProvider repository.POIProvider,
	aiRepo repository.CourseGenerationRepository,
	generator service.CourseGeneratorService,
) CourseUseCase {
	return &courseUseCaseImpl{
		geocoder:    geocoder,
		poiProvider: poiProvider,
		aiRepo:      aiRepo,
		generator:   generator,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (u *courseUseCaseImpl) GenerateCourses(ctx context.Context, req *model.CourseRequest) (*model.CourseResponse, error) {
	// Step 1: 開始地点の解決
	center, err := u.resolveCenter(ctx, req)
	if err != nil {
		return nil, err
	}

	// Step 2: 周辺POIの取得
	log.Printf("📍 周辺スポット取得中... (半径%dm)", req.RadiusMeters)
	pool, err := u.poiProvider.FindNearby(ctx, center.ToLatLng(), req.RadiusMeters)
	if err != nil {
		return nil, fmt.Errorf("周辺スポットの取得に失敗: %w", err)
	}

	usable := helper.FilterRoutable(pool)
	if len(usable) < minUsablePOIs {
		return nil, fmt.Errorf("周辺にスポットがあまり見つかりませんでした (%d件)", len(usable))
	}
	log.Printf("✅ %d件のスポットを取得", len(usable))

	// Step 3: AI生成を試行し、失敗または0件なら決定的エンジンにフォールバック
	courses, generatorKind := u.generate(ctx, center.ToLatLng(), usable, req.DurationMinutes)
	if len(courses) == 0 {
		return nil, errors.New("条件に合うコースが作成できませんでした")
	}

	log.Printf("🎉 コース生成完了 (%d件, generator=%s)", len(courses), generatorKind)

	return &model.CourseResponse{
		BatchID:   uuid.New().String(),
		Center:    *center,
		Generator: generatorKind,
		Courses:   convertToSlice(courses),
	}, nil
}

// resolveCenter は座標指定があればそれを、なければジオコーダで解決する
func (u *courseUseCaseImpl) resolveCenter(ctx context.Context, req *model.CourseRequest) (*model.Location, error) {
	if req.HasLocation() {
		return req.Location, nil
	}

	log.Printf("🔍 場所を検索中... (%s)", req.Query)
	center, err := u.geocoder.Geocode(ctx, req.Query)
	if err != nil {
		return nil, fmt.Errorf("場所の検索に失敗: %w", err)
	}
	return center, nil
}

// generate はAI経路→決定的エンジンの順でコース生成を行う
func (u *courseUseCaseImpl) generate(ctx context.Context, center model.LatLng, pool []*model.POI, durationMinutes int) ([]*model.Course, string) {
	if u.aiRepo != nil {
		candidates := helper.Shuffle(u.rng, pool)
		if len(candidates) > maxAICandidates {
			candidates = candidates[:maxAICandidates]
		}

		log.Printf("🤖 AIでコースを生成中... (候補%d件)", len(candidates))
		courses, err := u.aiRepo.GenerateCourses(ctx, center, candidates, durationMinutes)
		if err != nil {
			log.Printf("⚠️ AI生成に失敗、標準アルゴリズムにフォールバック: %v", err)
		} else if len(courses) == 0 {
			log.Printf("⚠️ AI生成が0件、標準アルゴリズムにフォールバック")
		} else {
			return courses, model.GeneratorAI
		}
	}

	log.Printf("🧮 標準アルゴリズムでコース生成中...")
	return u.generator.GenerateCourses(center, pool, durationMinutes), model.GeneratorHeuristic
}

// convertToSlice は[]*Courseを[]Courseに変換
func convertToSlice(courses []*model.Course) []model.Course {
	result := make([]model.Course, 0, len(courses))
	for _, c := range courses {
		if c != nil {
			result = append(result, *c)
		}
	}
	return result
}
