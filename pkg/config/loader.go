package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ajitpratap0/objectpool/pkg/errors"
)

// Load reads pool settings from a YAML file. ${VAR_NAME} references are
// replaced with environment variable values before parsing, and the result is
// validated, so a successful Load always yields settings a pool constructor
// will accept.
func Load(filePath string) (*Settings, error) {
	data, err := os.ReadFile(filePath) //nolint:gosec // G304: File path is controlled by caller and validated
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to read settings file")
	}

	content := substituteEnvVars(string(data))

	var s Settings
	if err := yaml.Unmarshal([]byte(content), &s); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to parse settings YAML")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Save writes pool settings to a YAML file.
func Save(filePath string, s *Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeConfig, "failed to marshal settings")
	}

	if err := os.WriteFile(filePath, data, 0o644); err != nil { //nolint:gosec
		return errors.Wrap(err, errors.ErrorTypeConfig, "failed to write settings file")
	}

	return nil
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values
func substituteEnvVars(content string) string {
	for {
		start := strings.Index(content, "${")
		if start == -1 {
			break
		}
		end := strings.Index(content[start:], "}")
		if end == -1 {
			break
		}
		end += start

		varName := content[start+2 : end]
		envValue := os.Getenv(varName)
		content = content[:start] + envValue + content[end+1:]
	}
	return content
}
