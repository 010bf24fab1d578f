package yaml

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Victor-armando18/menu-customizer/internal/domain"
	"github.com/Victor-armando18/menu-customizer/internal/domain/model"

	"gopkg.in/yaml.v3"
)

// Decode reads a YAML or JSON document into out, choosing the codec by file extension.
func Decode(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, out)
	case ".json":
		err = json.Unmarshal(data, out)
	default:
		return fmt.Errorf("unsupported document type %q", path)
	}
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func LoadRulePack(path string) (domain.RulePackDefinition, error) {
	var pack domain.RulePackDefinition
	if err := Decode(path, &pack); err != nil {
		return domain.RulePackDefinition{}, err
	}
	return pack, nil
}

func LoadProduct(path string) (domain.Product, error) {
	var p domain.Product
	if err := Decode(path, &p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func LoadSnapshot(path string) (model.Snapshot, error) {
	var s model.Snapshot
	if err := Decode(path, &s); err != nil {
		return model.Snapshot{}, err
	}
	return s, nil
}

// IsDocument reports whether a file name has an extension Decode understands.
func IsDocument(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}
