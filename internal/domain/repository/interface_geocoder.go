package repository

import (
	"context"

	"furari/internal/domain/model"
)

// Geocoder はフリーテキストの地名を座標に解決するコラボレータ
// 該当なしの場合は「場所が見つかりません」を含むエラーを返す
type Geocoder interface {
	Geocode(ctx context.Context, query string) (*model.Location, error)
}
