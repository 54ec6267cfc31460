package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/ironsheep/photo-fx-mcp/internal/codec"
	"github.com/ironsheep/photo-fx-mcp/internal/enhance"
	"github.com/ironsheep/photo-fx-mcp/internal/filters"
	"github.com/ironsheep/photo-fx-mcp/internal/metrics"
	"github.com/ironsheep/photo-fx-mcp/internal/preview"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "photo_analyze", "photo_filter").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	start := time.Now()
	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.logger.Info().Err(err).Str("tool", params.Name).Msg("tool failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}
	s.logger.Debug().Str("tool", params.Name).Dur("elapsed", time.Since(start)).Msg("tool finished")

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Analysis
	case "photo_analyze":
		return s.handlePhotoAnalyze(args)

	// Enhancement
	case "photo_enhance":
		return s.handlePhotoEnhance(args)

	// Filters
	case "photo_filter":
		return s.handlePhotoFilter(args)
	case "photo_filter_preview":
		return s.handlePhotoFilterPreview(ctx, args)
	case "photo_filters":
		return filters.Catalog(), nil

	// Cache
	case "photo_cache_clear":
		return s.handleCacheClear(), nil
	case "photo_cache_stats":
		return s.handleCacheStats(), nil

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Source Loading ===

// sourceArgs selects the input photo of a tool call.
type sourceArgs struct {
	Path        string `json:"path"`
	ImageBase64 string `json:"image_base64"`
}

func (a sourceArgs) load(s *Server) (*codec.Decoded, error) {
	switch {
	case a.Path != "" && a.ImageBase64 != "":
		return nil, errors.New("pass either path or image_base64, not both")
	case a.Path != "":
		return s.sources.Load(a.Path)
	case a.ImageBase64 != "":
		return codec.DecodeBase64(a.ImageBase64)
	}
	return nil, errors.New("path or image_base64 is required")
}

// ImageResult is an encoded output photo.
type ImageResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Format      string `json:"format"`
	MIMEType    string `json:"mime_type"`
	ImageBase64 string `json:"image_base64"`
}

func (s *Server) encodeResult(img image.Image, format string) (*ImageResult, error) {
	f, err := codec.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	enc := codec.Encoder{Format: f, Quality: s.cfg.JPEGQuality}
	data, err := enc.EncodeBase64(img)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	return &ImageResult{
		Width:       b.Dx(),
		Height:      b.Dy(),
		Format:      string(f),
		MIMEType:    f.MIMEType(),
		ImageBase64: data,
	}, nil
}

// === Analysis Handlers ===

// AnalyzeResult describes a source photo.
type AnalyzeResult struct {
	Width         int              `json:"width"`
	Height        int              `json:"height"`
	Format        string           `json:"format"`
	FileSizeBytes int64            `json:"file_size_bytes"`
	HasAlpha      bool             `json:"has_alpha"`
	Metrics       metrics.Metrics  `json:"metrics"`
	Palette       []metrics.Swatch `json:"palette"`
}

// defaultPaletteSize is the number of swatches photo_analyze reports.
const defaultPaletteSize = 5

type photoAnalyzeArgs struct {
	sourceArgs
	PaletteSize int `json:"palette_size"`
}

func (s *Server) handlePhotoAnalyze(args json.RawMessage) (interface{}, error) {
	var a photoAnalyzeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.PaletteSize == 0 {
		a.PaletteSize = defaultPaletteSize
	}
	src, err := a.load(s)
	if err != nil {
		return nil, err
	}
	b := src.Image.Bounds()
	return &AnalyzeResult{
		Width:         b.Dx(),
		Height:        b.Dy(),
		Format:        src.Format,
		FileSizeBytes: src.Size,
		HasAlpha:      !src.Image.Opaque(),
		Metrics:       metrics.Analyze(src.Image),
		Palette:       metrics.Palette(src.Image, a.PaletteSize),
	}, nil
}

// === Enhancement Handlers ===

type photoEnhanceArgs struct {
	sourceArgs
	Hints      []string `json:"hints"`
	Aggressive bool     `json:"aggressive"`
	Format     string   `json:"format"`
}

// EnhanceResult is the enhanced photo together with what was done to it.
type EnhanceResult struct {
	ImageResult
	Before  metrics.Metrics `json:"before"`
	After   metrics.Metrics `json:"after"`
	Report  enhance.Report  `json:"report"`
	Skipped []string        `json:"skipped,omitempty"`
}

func (s *Server) handlePhotoEnhance(args json.RawMessage) (interface{}, error) {
	var a photoEnhanceArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	src, err := a.load(s)
	if err != nil {
		return nil, err
	}

	before := metrics.Analyze(src.Image)
	out, report := s.enhancer.Run(src.Image, before, a.Hints, a.Aggressive)

	res, err := s.encodeResult(out, a.Format)
	if err != nil {
		return nil, err
	}
	return &EnhanceResult{
		ImageResult: *res,
		Before:      before,
		After:       metrics.Analyze(out),
		Report:      report,
		Skipped:     report.SkippedSteps(),
	}, nil
}

// === Filter Handlers ===

type photoFilterArgs struct {
	sourceArgs
	Filter string                `json:"filter"`
	Params *filters.CustomParams `json:"params"`
	Format string                `json:"format"`
}

// spec resolves the requested filter. Parameters select the custom filter
// when no name is given.
func (a photoFilterArgs) spec() (filters.Spec, error) {
	name := strings.ToLower(strings.TrimSpace(a.Filter))
	if name == filters.CustomName || (name == "" && a.Params != nil) {
		p := filters.DefaultCustomParams()
		if a.Params != nil {
			p = *a.Params
		}
		return filters.Custom{Settings: p}, nil
	}
	if a.Params != nil {
		return nil, fmt.Errorf("params are only accepted by the %s filter", filters.CustomName)
	}
	return filters.Parse(name)
}

// FilterResult is a filtered photo.
type FilterResult struct {
	ImageResult
	Filter string `json:"filter"`
}

func (s *Server) handlePhotoFilter(args json.RawMessage) (interface{}, error) {
	var a photoFilterArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	spec, err := a.spec()
	if err != nil {
		return nil, err
	}
	src, err := a.load(s)
	if err != nil {
		return nil, err
	}

	out, err := spec.Apply(src.Image)
	if err != nil {
		return nil, fmt.Errorf("failed to apply %s: %w", spec.Name(), err)
	}
	res, err := s.encodeResult(out, a.Format)
	if err != nil {
		return nil, err
	}
	return &FilterResult{ImageResult: *res, Filter: filters.Key(spec)}, nil
}

// PreviewResult is a filtered, down-scaled photo.
type PreviewResult struct {
	FilterResult

	// Cached reports whether the preview was already in the cache.
	Cached bool `json:"cached"`

	// Error is set when the filter failed and the unfiltered preview was
	// returned instead.
	Error string `json:"error,omitempty"`
}

func (s *Server) handlePhotoFilterPreview(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a photoFilterArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	spec, err := a.spec()
	if err != nil {
		return nil, err
	}
	src, err := a.load(s)
	if err != nil {
		return nil, err
	}

	small := codec.Fit(src.Image, s.cfg.PreviewMaxDim)

	key := preview.FilterKey(small, spec)
	cached := s.previews.Contains(key)
	out, err := s.previews.GetOrCompute(ctx, key, small, func() (*image.NRGBA, error) {
		return spec.Apply(small)
	})

	result := &PreviewResult{Cached: cached}
	var cerr *preview.ComputeError
	switch {
	case errors.As(err, &cerr):
		result.Error = cerr.Error()
	case err != nil:
		return nil, err
	}

	res, err := s.encodeResult(out, a.Format)
	if err != nil {
		return nil, err
	}
	result.FilterResult = FilterResult{ImageResult: *res, Filter: filters.Key(spec)}
	return result, nil
}

// === Cache Handlers ===

// CacheClearResult reports what photo_cache_clear removed.
type CacheClearResult struct {
	PreviewsRemoved int `json:"previews_removed"`
	SourcesRemoved  int `json:"sources_removed"`
}

func (s *Server) handleCacheClear() *CacheClearResult {
	res := &CacheClearResult{
		PreviewsRemoved: s.previews.Len(),
		SourcesRemoved:  s.sources.Len(),
	}
	s.previews.Clear()
	s.sources.Clear()
	return res
}

// CacheStatsResult reports preview cache activity.
type CacheStatsResult struct {
	Previews preview.Stats `json:"previews"`
	Sources  int           `json:"sources"`
}

func (s *Server) handleCacheStats() *CacheStatsResult {
	return &CacheStatsResult{
		Previews: s.previews.Stats(),
		Sources:  s.sources.Len(),
	}
}
