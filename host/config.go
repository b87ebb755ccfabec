package host

import "github.com/goccy/go-yaml"

// Config is an optional session configuration file accepted by the CLI and
// embeddable host package (spec §1's ambient configuration section).
// Absent a config file, the zero value matches spec defaults: no
// short-circuit, a single shared worker pool for parallel blocks.
type Config struct {
	Trace           bool `yaml:"trace"`
	ShortCircuit    bool `yaml:"short_circuit"`
	MaxParallel     int  `yaml:"max_parallel_workers"`
	StagedInputOnly bool `yaml:"staged_input_only"`
}

// LoadConfig parses a YAML session config document.
func LoadConfig(data []byte) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, err
	}
	return c, nil
}

// EngineOptions converts a Config into Engine options.
func (c Config) EngineOptions() []Option {
	return []Option{WithShortCircuit(c.ShortCircuit)}
}
