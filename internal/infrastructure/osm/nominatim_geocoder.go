package osm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"furari/internal/domain/model"
	"furari/internal/domain/repository"
)

// NominatimGeocoder はOSM Nominatimを使用したジオコーダの実装
type NominatimGeocoder struct {
	baseURL    string
	httpClient *http.Client
}

// NewNominatimGeocoder は新しいジオコーダを生成する
func NewNominatimGeocoder() repository.Geocoder {
	return &NominatimGeocoder{
		baseURL:    "https://nominatim.openstreetmap.org/search",
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Geocode は地名のフリーテキストを座標に解決する
func (g *NominatimGeocoder) Geocode(ctx context.Context, query string) (*model.Location, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("addressdetails", "1")
	params.Set("limit", "5")
	params.Set("countrycodes", "jp") // 日本国内の利用を想定

	reqURL := fmt.Sprintf("%s?%s", g.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("リクエストの作成に失敗: %w", err)
	}
	// Nominatimの利用規約でUser-Agentの明示が求められている
	req.Header.Set("User-Agent", "furari/1.0")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ジオコーディングAPIリクエストに失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ジオコーディングAPIからエラーステータスが返されました: %s", resp.Status)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("JSONのパースに失敗: %w", err)
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("場所が見つかりませんでした: %s", query)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("緯度のパースに失敗: %w", err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("経度のパースに失敗: %w", err)
	}

	return &model.Location{Latitude: lat, Longitude: lng}, nil
}

// nominatimResult Nominatim検索APIのレスポンス要素
// 緯度経度は文字列として返ってくる
type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}
