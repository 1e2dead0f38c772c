// Package config reads the optional per-project .learnlog.yml. The one
// knob is the topic keyword vocabulary; the built-in action-verb list
// is only a heuristic, so projects can swap it out.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fileName = ".learnlog.yml"

type Config struct {
	Topics []string `yaml:"topics"`
}

// DefaultTopics is the built-in topic vocabulary matched against user
// messages.
func DefaultTopics() []string {
	return []string{
		"implement", "fix", "create", "update", "refactor", "add",
		"remove", "debug", "test", "deploy", "configure", "optimize",
		"migrate",
	}
}

// Load reads .learnlog.yml from projectDir. A missing file yields the
// defaults with no error; a malformed one yields the defaults plus an
// error the caller can warn about — capture never fails on config.
func Load(projectDir string) (*Config, error) {
	cfg := &Config{Topics: DefaultTopics()}

	data, err := os.ReadFile(filepath.Join(projectDir, fileName))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read %s: %w", fileName, err)
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", fileName, err)
	}
	if len(parsed.Topics) > 0 {
		cfg.Topics = parsed.Topics
	}
	return cfg, nil
}
