package files

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ruoyu-qian/typedeck/pkg/models"
	"gopkg.in/yaml.v3"
)

// ReadSettings loads the project settings. A missing settings file is
// not an error; defaults apply until something is written.
func ReadSettings() (*models.Settings, error) {
	absPath := filepath.Join(TypedeckDir, SettingsFile)

	content, err := os.ReadFile(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.DefaultSettings(), nil
		}
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	settings := models.DefaultSettings()
	if err := yaml.Unmarshal(content, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings YAML: %w", err)
	}

	return settings, nil
}

func WriteSettings(settings *models.Settings) error {
	absPath := filepath.Join(TypedeckDir, SettingsFile)

	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}

	content, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings to YAML: %w", err)
	}

	if err := os.WriteFile(absPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}

	return nil
}
