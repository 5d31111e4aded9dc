package model

import "math"

// LatLng 緯度経度を表す基本的な型（距離計算などで使用）
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// IsValid 緯度経度が有限値かどうかを判定する
func (l LatLng) IsValid() bool {
	if math.IsNaN(l.Lat) || math.IsNaN(l.Lng) {
		return false
	}
	if math.IsInf(l.Lat, 0) || math.IsInf(l.Lng, 0) {
		return false
	}
	return true
}

// POI Point of Interest（興味のあるスポット）を表すモデル
type POI struct {
	ID          string            `json:"id"`                     // ユニークなスポットID
	Name        string            `json:"name"`                   // スポット名
	Location    *LatLng           `json:"location"`               // 位置情報（欠損の場合はnil）
	Category    string            `json:"category"`               // カテゴリ（単一文字列）
	Tags        map[string]string `json:"tags,omitempty"`         // OSM等の属性バッグ（ルーティングには使わず表示用に透過）
	Rating      float64           `json:"rating,omitempty"`       // 評価値
	RatingCount int               `json:"rating_count,omitempty"` // 評価件数
}

// ToLatLng POIの位置情報をLatLng型に変換（欠損時はゼロ値）
func (p *POI) ToLatLng() LatLng {
	if p.Location != nil {
		return *p.Location
	}
	return LatLng{}
}

// HasValidLocation 位置情報が存在し有限値かどうかをチェック
// 座標が欠損・非有限のPOIはルーティングの対象にしない
func (p *POI) HasValidLocation() bool {
	return p.Location != nil && p.Location.IsValid()
}

// Tag 指定キーのタグ値を取得する（未設定の場合は空文字列）
func (p *POI) Tag(key string) string {
	if p.Tags == nil {
		return ""
	}
	return p.Tags[key]
}

// HasTag 指定キーのタグが設定されているかチェック
func (p *POI) HasTag(key string) bool {
	return p.Tag(key) != ""
}

// Location APIの入出力で使用する緯度経度型
type Location struct {
	Latitude  float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"required,min=-180,max=180"`
}

// ToLatLng Location を内部表現の LatLng に変換
func (l *Location) ToLatLng() LatLng {
	return LatLng{Lat: l.Latitude, Lng: l.Longitude}
}
