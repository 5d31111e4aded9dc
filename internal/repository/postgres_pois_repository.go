package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"furari/internal/domain/helper"
	"furari/internal/domain/model"
	"furari/internal/domain/repository"
	"furari/internal/infrastructure/database"
)

// PostgresPOIsRepository は事前収集したPOIテーブルを使うPOIProviderの実装
// Overpass APIが使えない環境（オフラインバッチやレート制限時）向けの代替ソース
type PostgresPOIsRepository struct {
	client *database.PostgreSQLClient
}

func NewPostgresPOIsRepository(client *database.PostgreSQLClient) repository.POIProvider {
	return &PostgresPOIsRepository{
		client: client,
	}
}

// poiRow poisテーブルの1行を受け取るための構造体
type poiRow struct {
	ID          string
	Name        string
	Lat         float64
	Lng         float64
	Category    string
	Tags        sql.NullString
	Rating      float64
	RatingCount int
}

// toPOI poiRowをmodel.POIに変換
func (r *poiRow) toPOI() (*model.POI, error) {
	poi := &model.POI{
		ID:          r.ID,
		Name:        r.Name,
		Location:    &model.LatLng{Lat: r.Lat, Lng: r.Lng},
		Category:    r.Category,
		Rating:      r.Rating,
		RatingCount: r.RatingCount,
	}

	if r.Tags.Valid && r.Tags.String != "" {
		var tags map[string]string
		if err := json.Unmarshal([]byte(r.Tags.String), &tags); err != nil {
			return nil, fmt.Errorf("tags JSONBパースエラー: %w", err)
		}
		poi.Tags = tags
	}

	return poi, nil
}

// FindNearby は中心座標の周辺からPOIを取得する
// 境界ボックスでSQL側を粗く絞り込み、直線距離で厳密にフィルタ・ソートする
func (r *PostgresPOIsRepository) FindNearby(ctx context.Context, center model.LatLng, radiusMeters int) ([]*model.POI, error) {
	bound := helper.BoundAround(center, float64(radiusMeters))

	query := `SELECT id, name, lat, lng, category, tags, rating, rating_count
		FROM pois
		WHERE lat BETWEEN $1 AND $2 AND lng BETWEEN $3 AND $4`

	rows, err := r.client.DB.QueryContext(ctx, query,
		bound.Min.Lat(), bound.Max.Lat(), bound.Min.Lon(), bound.Max.Lon())
	if err != nil {
		return nil, fmt.Errorf("POIデータの取得失敗: %w", err)
	}
	defer rows.Close()

	var pois []*model.POI
	for rows.Next() {
		var row poiRow
		if err := rows.Scan(&row.ID, &row.Name, &row.Lat, &row.Lng,
			&row.Category, &row.Tags, &row.Rating, &row.RatingCount); err != nil {
			return nil, fmt.Errorf("POIデータスキャンエラー: %w", err)
		}

		poi, err := row.toPOI()
		if err != nil {
			return nil, err
		}

		// 境界ボックスは四隅が半径を超えるため距離で厳密に絞る
		if helper.DistanceMetersPOI(center, poi) <= float64(radiusMeters) {
			pois = append(pois, poi)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("POIデータの読み取りに失敗: %w", err)
	}

	helper.SortByDistanceFromLocation(center, pois)
	return pois, nil
}
