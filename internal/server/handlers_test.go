package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ironsheep/photo-fx-mcp/internal/config"
	"github.com/ironsheep/photo-fx-mcp/internal/pixel"
)

// createTestImageFile creates a solid test image file and returns its path
func createTestImageFile(t *testing.T, width, height int, c color.Color) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), "photo.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

// encodeTestImage returns img as base64 PNG.
func encodeTestImage(t *testing.T, img image.Image) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

// callTool invokes a tool through handleRequest and decodes its text content
// into out. It returns the JSON-RPC error, if any.
func callTool(t *testing.T, s *Server, name string, args interface{}, out interface{}) *MCPError {
	t.Helper()

	params := map[string]interface{}{"name": name}
	if args != nil {
		params["arguments"] = args
	}
	paramsJSON, _ := json.Marshal(params)

	resp := s.handleRequest(context.Background(), &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  paramsJSON,
	})
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	if resp.Error != nil {
		return resp.Error
	}

	content := resp.Result.(map[string]interface{})["content"].([]map[string]interface{})
	text := content[0]["text"].(string)
	if out != nil {
		if err := json.Unmarshal([]byte(text), out); err != nil {
			t.Fatalf("failed to decode tool result: %v", err)
		}
	}
	return nil
}

func decodeResultImage(t *testing.T, res ImageResult) image.Image {
	t.Helper()
	data, err := base64.StdEncoding.DecodeString(res.ImageBase64)
	if err != nil {
		t.Fatalf("result is not base64: %v", err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("result is not an image: %v", err)
	}
	return img
}

func TestPhotoAnalyze(t *testing.T) {
	s := New()
	path := createTestImageFile(t, 100, 100, color.RGBA{40, 40, 40, 255})

	var res AnalyzeResult
	if err := callTool(t, s, "photo_analyze", map[string]interface{}{"path": path}, &res); err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if res.Width != 100 || res.Height != 100 || res.Format != "png" {
		t.Errorf("got %dx%d %s, want 100x100 png", res.Width, res.Height, res.Format)
	}
	if !res.Metrics.IsUnderexposed || res.Metrics.IsOverexposed {
		t.Errorf("exposure flags: %+v", res.Metrics)
	}
	if res.HasAlpha {
		t.Error("opaque photo reported alpha")
	}
	if len(res.Palette) != 1 || res.Palette[0].Hex != "#202020" || res.Palette[0].Percentage != 100 {
		t.Errorf("palette: got %+v, want a single #202020 swatch", res.Palette)
	}
}

func TestPhotoAnalyze_SourceErrors(t *testing.T) {
	s := New()
	tests := []struct {
		name string
		args interface{}
	}{
		{"no source", map[string]interface{}{}},
		{"both sources", map[string]interface{}{"path": "/tmp/a.png", "image_base64": "AAAA"}},
		{"missing file", map[string]interface{}{"path": filepath.Join(t.TempDir(), "missing.png")}},
		{"bad base64", map[string]interface{}{"image_base64": "%%%"}},
		{"no arguments", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := callTool(t, s, "photo_analyze", tt.args, nil)
			if err == nil || err.Code != -32000 {
				t.Errorf("got %+v, want tool execution error", err)
			}
		})
	}
}

func TestPhotoEnhance(t *testing.T) {
	s := New()
	src := pixel.Solid(100, 100, 40, 40, 40, 255)

	var res EnhanceResult
	args := map[string]interface{}{
		"image_base64": encodeTestImage(t, src),
		"hints":        []string{"too dark"},
	}
	if err := callTool(t, s, "photo_enhance", args, &res); err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if res.Width != 100 || res.Height != 100 || res.MIMEType != "image/png" {
		t.Errorf("unexpected image result: %dx%d %s", res.Width, res.Height, res.MIMEType)
	}
	if res.After.Brightness <= res.Before.Brightness {
		t.Errorf("brightness not raised: before %.1f after %.1f", res.Before.Brightness, res.After.Brightness)
	}
	if len(res.Report.Applied) == 0 {
		t.Error("report lists no applied steps")
	}

	out := decodeResultImage(t, res.ImageResult)
	if got := pixel.Clone(out).NRGBAAt(50, 50).R; got <= 40 {
		t.Errorf("centre pixel not brightened: %d", got)
	}
}

func TestPhotoFilter(t *testing.T) {
	s := New()
	path := createTestImageFile(t, 20, 10, color.RGBA{200, 100, 50, 255})

	tests := []struct {
		name       string
		args       map[string]interface{}
		wantFilter string
	}{
		{"basic", map[string]interface{}{"filter": "blackwhite"}, "blackwhite"},
		{"artistic", map[string]interface{}{"filter": "Neon"}, "neon"},
		{"default none", map[string]interface{}{}, "none"},
		{"custom by params", map[string]interface{}{"params": map[string]interface{}{"saturation": 0}}, "custom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.args["path"] = path
			var res FilterResult
			if err := callTool(t, s, "photo_filter", tt.args, &res); err != nil {
				t.Fatalf("unexpected error: %+v", err)
			}
			if res.Width != 20 || res.Height != 10 {
				t.Errorf("size: got %dx%d, want 20x10", res.Width, res.Height)
			}
			if name := filterName(res.Filter); name != tt.wantFilter {
				t.Errorf("filter: got %q, want %q", res.Filter, tt.wantFilter)
			}
		})
	}

	var res FilterResult
	callTool(t, s, "photo_filter", map[string]interface{}{"path": path, "filter": "blackwhite"}, &res)
	c := pixel.Clone(decodeResultImage(t, res.ImageResult)).NRGBAAt(0, 0)
	if c.R != c.G || c.G != c.B {
		t.Errorf("blackwhite output not grey: %v", c)
	}
}

func filterName(key string) string {
	for i, r := range key {
		if r == ':' {
			return key[:i]
		}
	}
	return key
}

func TestPhotoFilter_JPEGOutput(t *testing.T) {
	s := New()
	path := createTestImageFile(t, 16, 16, color.RGBA{10, 200, 10, 255})

	var res FilterResult
	if err := callTool(t, s, "photo_filter", map[string]interface{}{"path": path, "filter": "warm", "format": "jpg"}, &res); err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if res.Format != "jpeg" || res.MIMEType != "image/jpeg" {
		t.Errorf("got %s %s, want jpeg image/jpeg", res.Format, res.MIMEType)
	}
	decodeResultImage(t, res.ImageResult)
}

func TestPhotoFilter_Errors(t *testing.T) {
	s := New()
	path := createTestImageFile(t, 4, 4, color.RGBA{1, 2, 3, 255})
	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{"unknown filter", map[string]interface{}{"path": path, "filter": "sparkle"}},
		{"params on named filter", map[string]interface{}{"path": path, "filter": "vintage", "params": map[string]interface{}{"hue": 10}}},
		{"bad tint", map[string]interface{}{"path": path, "filter": "custom", "params": map[string]interface{}{"tint": "blue", "tint_strength": 1}}},
		{"bad format", map[string]interface{}{"path": path, "filter": "none", "format": "gif"}},
		{"short matrix", map[string]interface{}{"path": path, "filter": "custom", "params": map[string]interface{}{"matrix": []float64{1, 0, 0, 0, 0, 0, 1, 0, 0, 0}}}},
		{"long matrix", map[string]interface{}{"path": path, "filter": "custom", "params": map[string]interface{}{"matrix": make([]float64, 23)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := callTool(t, s, "photo_filter", tt.args, nil); err == nil {
				t.Error("expected a tool error")
			}
		})
	}
}

func TestPhotoFilterPreview_CachesAndScales(t *testing.T) {
	cfg := config.Defaults()
	cfg.PreviewMaxDim = 32
	s := New(WithConfig(cfg))
	path := createTestImageFile(t, 128, 64, color.RGBA{90, 120, 150, 255})
	args := map[string]interface{}{"path": path, "filter": "vintage"}

	var first PreviewResult
	if err := callTool(t, s, "photo_filter_preview", args, &first); err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if first.Width != 32 || first.Height != 16 {
		t.Errorf("preview size: got %dx%d, want 32x16", first.Width, first.Height)
	}
	if first.Cached {
		t.Error("first preview reported as cached")
	}

	var second PreviewResult
	if err := callTool(t, s, "photo_filter_preview", args, &second); err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if !second.Cached {
		t.Error("second preview should come from the cache")
	}
	if second.ImageBase64 != first.ImageBase64 {
		t.Error("cached preview differs from the first")
	}

	var stats CacheStatsResult
	callTool(t, s, "photo_cache_stats", nil, &stats)
	if stats.Previews.Computes != 1 || stats.Previews.Hits != 1 || stats.Previews.Entries != 1 {
		t.Errorf("unexpected stats: %+v", stats.Previews)
	}
	if stats.Sources != 1 {
		t.Errorf("sources: got %d, want 1", stats.Sources)
	}

	var cleared CacheClearResult
	callTool(t, s, "photo_cache_clear", nil, &cleared)
	if cleared.PreviewsRemoved != 1 || cleared.SourcesRemoved != 1 {
		t.Errorf("cleared: got %+v", cleared)
	}
	callTool(t, s, "photo_cache_stats", nil, &stats)
	if stats.Previews.Entries != 0 || stats.Sources != 0 {
		t.Errorf("cache not empty after clear: %+v", stats)
	}
}

func TestPhotoFilterPreview_FailureFallsBack(t *testing.T) {
	s := New()
	src := pixel.Solid(8, 8, 10, 20, 30, 255)
	args := map[string]interface{}{
		"image_base64": encodeTestImage(t, src),
		"filter":       "custom",
		"params":       map[string]interface{}{"tint": "#zzzzzz", "tint_strength": 0.5},
	}

	var res PreviewResult
	if err := callTool(t, s, "photo_filter_preview", args, &res); err != nil {
		t.Fatalf("preview failures should not fail the call: %+v", err)
	}
	if res.Error == "" {
		t.Error("expected an error field")
	}
	if !pixel.Equal(decodeResultImage(t, res.ImageResult), src) {
		t.Error("fallback should be the unfiltered preview")
	}

	var stats CacheStatsResult
	callTool(t, s, "photo_cache_stats", nil, &stats)
	if stats.Previews.Failures != 1 || stats.Previews.Entries != 0 {
		t.Errorf("unexpected stats: %+v", stats.Previews)
	}
}

func TestPhotoFilters(t *testing.T) {
	s := New()
	var entries []struct {
		Name   string `json:"name"`
		Family string `json:"family"`
	}
	if err := callTool(t, s, "photo_filters", nil, &entries); err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if len(entries) != 13 {
		t.Errorf("got %d filters, want 13", len(entries))
	}
}

func TestUnknownTool(t *testing.T) {
	s := New()
	err := callTool(t, s, "photo_teleport", nil, nil)
	if err == nil || err.Code != -32000 {
		t.Errorf("got %+v, want tool execution error", err)
	}
}

func TestToolsCall_InvalidParams(t *testing.T) {
	s := New()
	resp := s.handleRequest(context.Background(), &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  json.RawMessage(`"not an object"`),
	})
	if resp.Error == nil || resp.Error.Code != -32602 {
		t.Errorf("got %+v, want -32602", resp.Error)
	}
}
