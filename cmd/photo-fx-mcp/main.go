package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/ironsheep/photo-fx-mcp/internal/config"
	"github.com/ironsheep/photo-fx-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("photo-fx-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("photo-fx-mcp - MCP server for photo enhancement and artistic filters")
			fmt.Println()
			fmt.Println("Usage: photo-fx-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables (also read from ./.env):")
			fmt.Printf("  %s=debug          Log level (trace, debug, info, warn, error)\n", config.EnvLogLevel)
			fmt.Printf("  %s=50        Preview cache entries\n", config.EnvCacheCapacity)
			fmt.Printf("  %s=10     Entries evicted when the cache is full\n", config.EnvCacheEvictBatch)
			fmt.Printf("  %s=512       Longest side of filter previews\n", config.EnvPreviewMaxDim)
			fmt.Printf("  %s=100          JPEG output quality\n", config.EnvJPEGQuality)
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client.")
			return
		}
	}

	cfg, warnings, err := config.Load()

	// Log to stderr (stdout is for MCP protocol)
	logger := config.NewLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		logger.Warn().Err(err).Msg("ignoring .env file")
	}
	for _, w := range warnings {
		logger.Warn().Msg(w)
	}

	logger.Debug().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("commit", GitCommit).
		Dict("config", zerolog.Dict().
			Int("cache_capacity", cfg.CacheCapacity).
			Int("cache_evict_batch", cfg.CacheEvictBatch).
			Int("preview_max_dim", cfg.PreviewMaxDim).
			Int("jpeg_quality", cfg.JPEGQuality)).
		Msg("photo-fx-mcp starting")

	srv := server.New(
		server.WithConfig(cfg),
		server.WithLogger(logger),
		server.WithVersion(Version),
	)
	if err := srv.Run(); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}
