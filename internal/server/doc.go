// Package server implements the MCP (Model Context Protocol) server for the
// photo enhancement and filter engine.
//
// This package provides a JSON-RPC 2.0 server that exposes photo analysis,
// automatic enhancement and artistic filters through the MCP protocol.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Analysis:
//   - photo_analyze: Brightness, contrast, sharpness, colour balance and the
//     corrections they call for
//
// Enhancement:
//   - photo_enhance: Automatic correction, optionally steered by free-text hints
//
// Filters:
//   - photo_filter: Apply a basic, artistic or custom filter at full size
//   - photo_filter_preview: Apply a filter to a down-scaled, cached copy
//   - photo_filters: List the named filters
//
// Cache:
//   - photo_cache_clear: Drop cached previews and loaded sources
//   - photo_cache_stats: Preview cache counters
//
// Every photo tool takes its input as either a file path or inline base64.
// Output photos are returned as base64 PNG (default) or JPEG at the
// configured quality.
//
// # Caching
//
// Photos loaded by path are kept in a [codec.Loader] for the lifetime of the
// process. Previews go through a bounded [preview.Cache] so that hovering over
// the same filter twice never recomputes it; a filter that fails during a
// preview returns the unfiltered preview with an error field instead of
// failing the call.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	cfg, _, _ := config.Load()
//	srv := server.New(server.WithConfig(cfg), server.WithLogger(logger))
//	if err := srv.Run(); err != nil {
//	    logger.Fatal().Err(err).Msg("server error")
//	}
package server
