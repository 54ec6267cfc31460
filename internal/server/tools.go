package server

import "github.com/ironsheep/photo-fx-mcp/internal/filters"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// sourceSchema returns an object schema whose properties include the two ways
// of passing a photo, plus extra.
func sourceSchema(extra map[string]interface{}) map[string]interface{} {
	props := map[string]interface{}{
		"path": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to the photo file. Either path or image_base64 is required.",
		},
		"image_base64": map[string]interface{}{
			"type":        "string",
			"description": "Base64 encoded photo (PNG, JPEG, GIF, WebP, TIFF or BMP). A data URL prefix is accepted.",
		},
	}
	for k, v := range extra {
		props[k] = v
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": props,
	}
}

var formatProperty = map[string]interface{}{
	"type":        "string",
	"enum":        []string{"png", "jpeg"},
	"description": "Output encoding. Default png",
	"default":     "png",
}

func filterNames() []string {
	names := []string{filters.CustomName}
	for _, e := range filters.Catalog() {
		names = append(names, e.Name)
	}
	return names
}

var customParamsProperty = map[string]interface{}{
	"type":        "object",
	"description": "Parameters for the custom filter. Omitted fields keep their identity value.",
	"properties": map[string]interface{}{
		"brightness": map[string]interface{}{"type": "number", "description": "Channel multiplier. Default 1"},
		"contrast":   map[string]interface{}{"type": "number", "description": "Contrast factor; >1 stretches, <1 flattens. Default 1"},
		"saturation": map[string]interface{}{"type": "number", "description": "Saturation factor; 0 is grey. Default 1"},
		"hue":        map[string]interface{}{"type": "number", "description": "Hue rotation in degrees. Default 0"},
		"vignette":   map[string]interface{}{"type": "number", "description": "Vignette strength 0-1. Default 0"},
		"grain":      map[string]interface{}{"type": "number", "description": "Film grain strength 0-1. Default 0"},
		"blur":       map[string]interface{}{"type": "number", "description": "Gaussian blur sigma in pixels. Default 0"},
		"matrix": map[string]interface{}{
			"type":        "array",
			"items":       map[string]interface{}{"type": "number"},
			"minItems":    20,
			"maxItems":    20,
			"description": "Optional 4x5 row-major colour matrix; the fifth column is an offset in 0-255 units",
		},
		"tint":          map[string]interface{}{"type": "string", "description": "Optional tint colour as #RRGGBB"},
		"tint_strength": map[string]interface{}{"type": "number", "description": "Tint strength 0-1"},
		"seed":          map[string]interface{}{"type": "integer", "description": "Grain seed. Default 1"},
	},
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	filterProps := map[string]interface{}{
		"filter": map[string]interface{}{
			"type":        "string",
			"enum":        filterNames(),
			"description": "Filter name. Use photo_filters to list them.",
		},
		"params": customParamsProperty,
		"format": formatProperty,
	}

	return []Tool{
		// Analysis
		{
			Name:        "photo_analyze",
			Description: "Measure a photo's brightness, contrast, sharpness and colour balance, report which corrections it needs, and list its dominant colours.",
			InputSchema: sourceSchema(map[string]interface{}{
				"palette_size": map[string]interface{}{
					"type":        "integer",
					"description": "Number of dominant colours to return. Default 5",
					"default":     5,
				},
			}),
		},

		// Enhancement
		{
			Name:        "photo_enhance",
			Description: "Automatically correct exposure, contrast, saturation, white balance, noise and sharpness. Returns the enhanced photo as base64 with a report of the corrections applied.",
			InputSchema: sourceSchema(map[string]interface{}{
				"hints": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Free-text improvement hints, e.g. \"too dark\", \"blurry\". Matched by keyword on a best-effort basis.",
				},
				"aggressive": map[string]interface{}{
					"type":        "boolean",
					"description": "Apply stronger corrections. Default false",
					"default":     false,
				},
				"format": formatProperty,
			}),
		},

		// Filters
		{
			Name:        "photo_filter",
			Description: "Apply a basic, artistic or custom filter at full resolution and return the result as base64.",
			InputSchema: sourceSchema(filterProps),
		},
		{
			Name:        "photo_filter_preview",
			Description: "Apply a filter to a down-scaled copy of the photo for quick previews. Results are cached, so repeated previews of the same photo and filter are instant.",
			InputSchema: sourceSchema(filterProps),
		},
		{
			Name:        "photo_filters",
			Description: "List the named basic and artistic filters with a short description of each.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},

		// Cache
		{
			Name:        "photo_cache_clear",
			Description: "Drop every cached preview and loaded source photo.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "photo_cache_stats",
			Description: "Report preview cache hits, misses, computations, failures and evictions.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
