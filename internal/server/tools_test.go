package server

import (
	"testing"

	"github.com/ironsheep/photo-fx-mcp/internal/filters"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	expectedTools := []string{
		"photo_analyze",
		"photo_enhance",
		"photo_filter",
		"photo_filter_preview",
		"photo_filters",
		"photo_cache_clear",
		"photo_cache_stats",
	}
	if len(tools) != len(expectedTools) {
		t.Errorf("got %d tools, want %d", len(tools), len(expectedTools))
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		toolMap[tool.Name] = tool
	}
	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want object", tool.InputSchema["type"])
			}
			if _, ok := tool.InputSchema["properties"].(map[string]interface{}); !ok {
				t.Error("InputSchema properties missing")
			}
		})
	}
}

func TestToolDefinitions_PhotoInputs(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		switch tool.Name {
		case "photo_filters", "photo_cache_clear", "photo_cache_stats":
			continue
		}
		props := tool.InputSchema["properties"].(map[string]interface{})
		for _, p := range []string{"path", "image_base64"} {
			if _, ok := props[p]; !ok {
				t.Errorf("%s: missing %s property", tool.Name, p)
			}
		}
	}
}

func TestFilterNames_CoverCatalog(t *testing.T) {
	names := filterNames()
	if len(names) != len(filters.Catalog())+1 {
		t.Fatalf("got %d names, want catalog plus custom", len(names))
	}
	if names[0] != filters.CustomName {
		t.Errorf("first name: got %q, want %q", names[0], filters.CustomName)
	}
}
