package filter

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"
)

// LoadPaths reads a JSONC array of strings, such as a path list or a set of
// patterns. Comments and trailing commas are allowed.
func LoadPaths(path string) ([]string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is from user-supplied config
	if err != nil {
		return nil, fmt.Errorf("reading path list %q: %w", path, err)
	}

	var paths []string
	if err := json.Unmarshal(jsonc.ToJSONInPlace(data), &paths); err != nil {
		return nil, fmt.Errorf("parsing path list %q: %w", path, err)
	}

	return paths, nil
}
