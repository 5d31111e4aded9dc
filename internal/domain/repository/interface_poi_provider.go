package repository

import (
	"context"

	"furari/internal/domain/model"
)

// POIProvider は中心座標と半径から周辺POIのプールを取得するコラボレータ
// Overpass API実装とDB実装（Postgres/Supabase）が存在する
type POIProvider interface {
	FindNearby(ctx context.Context, center model.LatLng, radiusMeters int) ([]*model.POI, error)
}
