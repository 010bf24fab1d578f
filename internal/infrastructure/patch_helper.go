package infrastructure

import (
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch/v5"
)

// ApplyPatch applies an RFC 6902 patch to any JSON-encodable value and decodes the
// result into a fresh value of the same type.
func ApplyPatch[T any](original T, patchData []byte) (T, error) {
	originalJSON, err := json.Marshal(original)
	if err != nil {
		return original, err
	}

	patch, err := jsonpatch.DecodePatch(patchData)
	if err != nil {
		return original, fmt.Errorf("failed to decode patch: %w", err)
	}

	modifiedJSON, err := patch.Apply(originalJSON)
	if err != nil {
		return original, fmt.Errorf("failed to apply patch: %w", err)
	}

	var updated T
	if err := json.Unmarshal(modifiedJSON, &updated); err != nil {
		return original, err
	}
	return updated, nil
}

// HasDelta reports whether two JSON-encodable values differ, using an RFC 7386 merge patch.
func HasDelta(before, after any) (bool, error) {
	a, err := json.Marshal(before)
	if err != nil {
		return false, err
	}
	b, err := json.Marshal(after)
	if err != nil {
		return false, err
	}
	patch, err := jsonpatch.CreateMergePatch(a, b)
	if err != nil {
		return false, err
	}
	return len(patch) > 2, nil
}
