package repository

import (
	"context"

	"furari/internal/domain/model"
)

// CourseGenerationRepository はLLMによる代替コース生成のコラボレータ
// 決定的エンジンと同じCourse形状を返す。失敗・タイムアウト・0件の場合は
// 呼び出し側が決定的エンジンにフォールバックする
type CourseGenerationRepository interface {
	GenerateCourses(ctx context.Context, center model.LatLng, candidates []*model.POI, durationMinutes int) ([]*model.Course, error)
}
