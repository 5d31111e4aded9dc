package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"furari/internal/domain/helper"
	"furari/internal/domain/model"
	"furari/internal/domain/repository"
	"furari/internal/infrastructure/database"
)

// SupabasePOIsRepository はSupabase REST経由のPOIProviderの実装
// PostgRESTは地理条件での絞り込みに制約があるため、境界ボックスで取得して
// アプリ側で距離フィルタする
type SupabasePOIsRepository struct {
	client *database.SupabaseClient
}

func NewSupabasePOIsRepository(client *database.SupabaseClient) repository.POIProvider {
	return &SupabasePOIsRepository{
		client: client,
	}
}

// supabasePOI poisテーブルのレコード
type supabasePOI struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Lat         float64           `json:"lat"`
	Lng         float64           `json:"lng"`
	Category    string            `json:"category"`
	Tags        map[string]string `json:"tags"`
	Rating      float64           `json:"rating"`
	RatingCount int               `json:"rating_count"`
}

// FindNearby は中心座標の周辺からPOIを取得する
func (r *SupabasePOIsRepository) FindNearby(ctx context.Context, center model.LatLng, radiusMeters int) ([]*model.POI, error) {
	bound := helper.BoundAround(center, float64(radiusMeters))

	data, count, err := r.client.GetClient().From("pois").
		Select("*", "exact", false).
		Gte("lat", fmt.Sprintf("%f", bound.Min.Lat())).
		Lte("lat", fmt.Sprintf("%f", bound.Max.Lat())).
		Gte("lng", fmt.Sprintf("%f", bound.Min.Lon())).
		Lte("lng", fmt.Sprintf("%f", bound.Max.Lon())).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("POIデータの取得失敗: %w", err)
	}
	_ = count

	var records []supabasePOI
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		return nil, fmt.Errorf("POIデータのJSONアンマーシャル失敗: %w", err)
	}

	var pois []*model.POI
	for _, rec := range records {
		poi := &model.POI{
			ID:          rec.ID,
			Name:        rec.Name,
			Location:    &model.LatLng{Lat: rec.Lat, Lng: rec.Lng},
			Category:    rec.Category,
			Tags:        rec.Tags,
			Rating:      rec.Rating,
			RatingCount: rec.RatingCount,
		}
		if helper.DistanceMetersPOI(center, poi) <= float64(radiusMeters) {
			pois = append(pois, poi)
		}
	}

	helper.SortByDistanceFromLocation(center, pois)
	return pois, nil
}
