package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Victor-armando18/menu-customizer/internal/domain"
	"github.com/Victor-armando18/menu-customizer/internal/infrastructure/yaml"
	"github.com/Victor-armando18/menu-customizer/internal/interfaces"
)

type FileRuleLoader struct {
	Dir string
}

func NewFileRuleLoader(dir string) interfaces.RulePackLoader {
	return &FileRuleLoader{Dir: dir}
}

// Load reads <dir>/<version>_rules.{json,yaml,yml}. Versions are normalized to a "v" prefix.
func (l *FileRuleLoader) Load(ctx context.Context, version string) (*domain.RulePackDefinition, error) {
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	for _, ext := range []string{".json", ".yaml", ".yml"} {
		path := filepath.Join(l.Dir, version+"_rules"+ext)
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			continue
		}
		def, err := yaml.LoadRulePack(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read rule file %s: %w", path, err)
		}
		if def.Version == "" {
			def.Version = version
		}
		return &def, nil
	}
	return nil, fmt.Errorf("rule pack %s not found in %s: %w", version, l.Dir, os.ErrNotExist)
}
