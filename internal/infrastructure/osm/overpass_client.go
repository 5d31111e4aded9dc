package osm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"furari/internal/domain/model"
	"furari/internal/domain/repository"
)

// OverpassPOIProvider はOverpass APIを使用した周辺POI取得の実装
type OverpassPOIProvider struct {
	baseURL    string
	httpClient *http.Client
}

// NewOverpassPOIProvider は新しいプロバイダを生成する
func NewOverpassPOIProvider() repository.POIProvider {
	return &OverpassPOIProvider{
		baseURL: "https://overpass-api.de/api/interpreter",
		// 広いエリアではクエリが重いためタイムアウトは長めに取る
		httpClient: &http.Client{Timeout: 90 * time.Second},
	}
}

// Overpassクエリで対象とするタグの正規表現
const (
	tourismTags = "attraction|museum|art_gallery|zoo|aquarium|viewpoint|theme_park"
	leisureTags = "park|garden"
	naturalTags = "peak|sand|wood|water"
	amenityTags = "restaurant|cafe|fast_food|food_court|pub|bar|ice_cream|biergarten"
	shopTags    = "bakery|confectionery|pastry|chocolate|coffee|tea|gift|souvenir|department_store|mall"
)

// FindNearby は中心座標の周辺からPOIのプールを取得する
// 名前または座標が欠けている要素は除外し、OSMタグを閉じたカテゴリ列挙に写像する
func (o *OverpassPOIProvider) FindNearby(ctx context.Context, center model.LatLng, radiusMeters int) ([]*model.POI, error) {
	query := o.buildQuery(center, radiusMeters)

	params := url.Values{}
	params.Set("data", query)

	reqURL := fmt.Sprintf("%s?%s", o.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("リクエストの作成に失敗: %w", err)
	}

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Overpass APIリクエストに失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Overpass APIからエラーステータスが返されました: %s", resp.Status)
	}

	var apiResp overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("JSONのパースに失敗: %w", err)
	}

	var pois []*model.POI
	for _, el := range apiResp.Elements {
		poi := elementToPOI(el)
		if poi != nil {
			pois = append(pois, poi)
		}
	}

	return pois, nil
}

// buildQuery は周辺POI取得用のOverpass QLクエリを構築する
func (o *OverpassPOIProvider) buildQuery(center model.LatLng, radiusMeters int) string {
	around := fmt.Sprintf("(around:%d,%f,%f)", radiusMeters, center.Lat, center.Lng)

	var b strings.Builder
	b.WriteString("[out:json][timeout:90][maxsize:20000000];\n(\n")
	for _, elType := range []string{"node", "way"} {
		fmt.Fprintf(&b, "  %s[\"tourism\"~\"%s\"]%s;\n", elType, tourismTags, around)
		fmt.Fprintf(&b, "  %s[\"historic\"]%s;\n", elType, around)
		fmt.Fprintf(&b, "  %s[\"leisure\"~\"%s\"]%s;\n", elType, leisureTags, around)
		fmt.Fprintf(&b, "  %s[\"religion\"~\"shinto|buddhist\"]%s;\n", elType, around)
		fmt.Fprintf(&b, "  %s[\"amenity\"~\"%s\"]%s;\n", elType, amenityTags, around)
		fmt.Fprintf(&b, "  %s[\"shop\"~\"%s\"]%s;\n", elType, shopTags, around)
	}
	// 自然地形はnodeのみ対象（wayで取ると河川全体などが紛れ込む）
	fmt.Fprintf(&b, "  node[\"natural\"~\"%s\"]%s;\n", naturalTags, around)
	b.WriteString(");\nout center;\n")
	return b.String()
}

// elementToPOI はOverpassの要素をドメインモデルに変換する
// 表示に必要な情報（名前・座標）が欠けている場合はnilを返す
func elementToPOI(el overpassElement) *model.POI {
	name := el.Tags["name:ja"]
	if name == "" {
		name = el.Tags["name"]
	}
	if name == "" {
		return nil
	}

	lat, lng := el.Lat, el.Lon
	if lat == 0 && lng == 0 {
		if el.Center == nil {
			return nil
		}
		lat, lng = el.Center.Lat, el.Center.Lon
	}

	return &model.POI{
		ID:       fmt.Sprintf("%s/%d", el.Type, el.ID),
		Name:     name,
		Location: &model.LatLng{Lat: lat, Lng: lng},
		Category: categorize(el.Tags),
		Tags:     el.Tags,
	}
}

// categorize はOSMタグを閉じたカテゴリ列挙に写像する
func categorize(tags map[string]string) string {
	amenity := tags["amenity"]
	shop := tags["shop"]

	switch amenity {
	case "restaurant", "cafe", "fast_food", "food_court", "pub", "bar", "ice_cream", "biergarten":
		return model.CategoryGourmet
	}
	switch shop {
	case "bakery", "confectionery", "pastry", "chocolate", "coffee", "tea":
		return model.CategoryGourmet
	}

	if tags["historic"] != "" || tags["religion"] != "" {
		return model.CategoryHistory
	}
	if tags["leisure"] == "park" || tags["leisure"] == "garden" || tags["natural"] != "" {
		return model.CategoryNature
	}
	if tags["tourism"] == "museum" || tags["tourism"] == "art_gallery" || amenity == "arts_centre" {
		return model.CategoryArt
	}
	if shop != "" {
		return model.CategoryShopping
	}
	if tags["tourism"] != "" {
		return model.CategoryTourism
	}
	return model.CategoryOther
}

// --- Overpass APIのレスポンスをパースするための構造体 ---

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

type overpassElement struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    float64           `json:"lat,omitempty"`
	Lon    float64           `json:"lon,omitempty"`
	Center *overpassCenter   `json:"center,omitempty"`
	Tags   map[string]string `json:"tags"`
}

type overpassCenter struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}
