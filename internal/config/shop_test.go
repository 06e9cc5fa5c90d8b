package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeShopFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shop.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadShopDefaults(t *testing.T) {
	path := writeShopFile(t, `{
		"services": [
			{"name": "Oil Change", "price": "$49.99"},
			{"name": "Battery Test & Replacement", "price": "$129.99", "duration_minutes": 45}
		]
	}`)

	shop, err := LoadShop(path)
	require.NoError(t, err)

	assert.Equal(t, "Superior Auto Clinic", shop.ShopName)
	assert.Equal(t, "09:00", shop.Hours.Open)
	assert.Equal(t, "17:00", shop.Hours.Close)
	assert.Equal(t, 30, shop.IntervalMinutes)
	assert.Equal(t, 7, shop.LookaheadDays)
	assert.Equal(t, "America/Toronto", shop.Timezone)
	assert.InDelta(t, 0.5, shop.Matcher.Threshold, 1e-9)
	assert.InDelta(t, 0.8, shop.Matcher.TokenWeight, 1e-9)
	assert.InDelta(t, 0.2, shop.Matcher.CharacterWeight, 1e-9)

	// Unspecified duration falls back to 30 minutes.
	assert.Equal(t, 30, shop.Services[0].DurationMinutes)
	assert.Equal(t, 45, shop.Services[1].DurationMinutes)
}

func TestLoadShopValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "no services", content: `{"services": []}`},
		{name: "empty service name", content: `{"services": [{"name": ""}]}`},
		{name: "bad hours", content: `{"services": [{"name": "Oil Change"}], "hours": {"open": "9am", "close": "17:00"}}`},
		{name: "negative interval", content: `{"services": [{"name": "Oil Change"}], "booking_interval_minutes": -15}`},
		{name: "bad timezone", content: `{"services": [{"name": "Oil Change"}], "timezone": "Mars/Olympus"}`},
		{name: "not json", content: `services:`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadShop(writeShopFile(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadShopMissingFile(t *testing.T) {
	_, err := LoadShop(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestServiceLookup(t *testing.T) {
	shop := &Shop{Services: []Service{
		{Name: "Oil Change", DurationMinutes: 30},
		{Name: "Brake Inspection", DurationMinutes: 60},
	}}

	assert.Equal(t, []string{"Oil Change", "Brake Inspection"}, shop.ServiceNames())

	svc, ok := shop.FindService("oil change")
	require.True(t, ok)
	assert.Equal(t, 30, svc.DurationMinutes)

	_, ok = shop.FindService("Detailing")
	assert.False(t, ok)
}
