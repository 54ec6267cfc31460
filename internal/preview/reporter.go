package preview

import "github.com/rs/zerolog"

// Reporter receives every factory failure exactly once.
type Reporter interface {
	ReportFailure(key string, err error)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(key string, err error)

// ReportFailure implements Reporter.
func (f ReporterFunc) ReportFailure(key string, err error) { f(key, err) }

// LogReporter writes failures to a zerolog logger at warn level.
type LogReporter struct {
	Logger zerolog.Logger
}

// ReportFailure implements Reporter.
func (r LogReporter) ReportFailure(key string, err error) {
	r.Logger.Warn().Err(err).Str("key", key).Msg("preview computation failed")
}
