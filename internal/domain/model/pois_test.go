package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLatLngIsValid(t *testing.T) {
	assert.True(t, LatLng{Lat: 35.0, Lng: 135.7}.IsValid())
	assert.True(t, LatLng{}.IsValid(), "ゼロ値は有限なので有効")
	assert.False(t, LatLng{Lat: math.NaN(), Lng: 135.7}.IsValid())
	assert.False(t, LatLng{Lat: 35.0, Lng: math.Inf(-1)}.IsValid())
}

func TestPOIHasValidLocation(t *testing.T) {
	assert.True(t, (&POI{Location: &LatLng{Lat: 35.0, Lng: 135.7}}).HasValidLocation())
	assert.False(t, (&POI{}).HasValidLocation(), "座標欠損は無効")
	assert.False(t, (&POI{Location: &LatLng{Lat: math.NaN()}}).HasValidLocation())
}

func TestPOIToLatLng(t *testing.T) {
	p := &POI{Location: &LatLng{Lat: 35.0, Lng: 135.7}}
	assert.Equal(t, LatLng{Lat: 35.0, Lng: 135.7}, p.ToLatLng())

	missing := &POI{}
	assert.Equal(t, LatLng{}, missing.ToLatLng())
}

func TestPOITags(t *testing.T) {
	p := &POI{Tags: map[string]string{TagPhoto: "yes"}}
	assert.Equal(t, "yes", p.Tag(TagPhoto))
	assert.True(t, p.HasTag(TagPhoto))
	assert.False(t, p.HasTag(TagDescription))

	empty := &POI{}
	assert.Equal(t, "", empty.Tag(TagPhoto))
	assert.False(t, empty.HasTag(TagPhoto))
}

func TestLocationToLatLng(t *testing.T) {
	loc := &Location{Latitude: 35.011, Longitude: 135.768}
	assert.Equal(t, LatLng{Lat: 35.011, Lng: 135.768}, loc.ToLatLng())
}
