package helper

import (
	"math/rand"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"furari/internal/domain/model"
)

// DistanceMeters は2地点間の直線（大圏）距離をメートルで計算する
// 徒歩時間の近似には道路グラフではなく直線距離を使う
func DistanceMeters(p1, p2 model.LatLng) float64 {
	return geo.Distance(
		orb.Point{p1.Lng, p1.Lat},
		orb.Point{p2.Lng, p2.Lat},
	)
}

// DistanceMetersPOI は基準地点とPOIの距離をメートルで計算する
func DistanceMetersPOI(origin model.LatLng, poi *model.POI) float64 {
	return DistanceMeters(origin, poi.ToLatLng())
}

// SortByDistanceFromLocation は基準座標からの距離の昇順でPOIスライスをソートする
func SortByDistanceFromLocation(origin model.LatLng, targets []*model.POI) {
	sort.SliceStable(targets, func(i, j int) bool {
		return DistanceMetersPOI(origin, targets[i]) < DistanceMetersPOI(origin, targets[j])
	})
}

// FilterRoutable は座標が欠損・非有限のPOIを除外する
func FilterRoutable(pois []*model.POI) []*model.POI {
	var filtered []*model.POI
	for _, p := range pois {
		if p != nil && p.HasValidLocation() {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// Shuffle はFisher-Yates法でPOIスライスの新しいシャッフル済みコピーを返す
func Shuffle(rng *rand.Rand, pois []*model.POI) []*model.POI {
	shuffled := make([]*model.POI, len(pois))
	copy(shuffled, pois)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

// RemovePOIByID はスライスから指定IDのPOIを除外する
func RemovePOIByID(pois []*model.POI, id string) []*model.POI {
	var result []*model.POI
	for _, p := range pois {
		if p.ID != id {
			result = append(result, p)
		}
	}
	return result
}

// BoundAround は中心座標と半径（メートル）から境界ボックスを作成する
// DBバックエンドのPOI検索で距離計算前の粗い絞り込みに使う
func BoundAround(center model.LatLng, radiusMeters float64) orb.Bound {
	return geo.NewBoundAroundPoint(orb.Point{center.Lng, center.Lat}, radiusMeters)
}
