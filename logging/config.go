package logging

import "time"

// Config wires the gameplay event router. The server ships exactly two
// sinks, console and json; the memory sink exists for tests and is attached
// directly rather than selected here.
type Config struct {
	EnabledSinks    []string
	QueueDepth      int
	MinimumSeverity Severity
	Fields          map[string]any
	Console         ConsoleConfig
	JSON            JSONConfig
	DropWarnEvery   time.Duration
}

type ConsoleConfig struct {
	UseColor bool
}

type JSONConfig struct {
	FilePath      string
	FlushInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		EnabledSinks:    []string{"console"},
		QueueDepth:      256,
		MinimumSeverity: SeverityInfo,
		DropWarnEvery:   10 * time.Second,
		JSON: JSONConfig{
			FilePath:      "events.jsonl",
			FlushInterval: 2 * time.Second,
		},
	}
}

func (c Config) HasSink(name string) bool {
	for _, sink := range c.EnabledSinks {
		if sink == name {
			return true
		}
	}
	return false
}
