package config

import "fmt"

// Merge combines two configs where overlay takes precedence over base:
//   - version: must agree if both declare it (non-zero); fatal error on mismatch
//   - output, compiler, archiver, tool_timeout: overlay wins when set
//   - sort_entries, keep_intermediates: overlay wins when present
//   - exclude: concatenate (base first), duplicates dropped
func Merge(base, overlay *Config) (*Config, error) {
	if base == nil {
		return overlay, nil
	}
	if overlay == nil {
		return base, nil
	}

	result := &Config{}

	if err := mergeVersion(base.Version, overlay.Version, &result.Version); err != nil {
		return nil, err
	}

	result.Output = mergeString(base.Output, overlay.Output)
	result.Compiler = mergeString(base.Compiler, overlay.Compiler)
	result.Archiver = mergeString(base.Archiver, overlay.Archiver)

	result.SortEntries = base.SortEntries
	if overlay.SortEntries != nil {
		result.SortEntries = overlay.SortEntries
	}
	result.KeepIntermediates = base.KeepIntermediates
	if overlay.KeepIntermediates != nil {
		result.KeepIntermediates = overlay.KeepIntermediates
	}

	result.ToolTimeout = base.ToolTimeout
	if overlay.ToolTimeout != 0 {
		result.ToolTimeout = overlay.ToolTimeout
	}

	result.Exclude = mergeExclude(base.Exclude, overlay.Exclude)

	return result, nil
}

// MergeAll merges multiple configs in order (lowest precedence first).
// Returns an error if any version mismatch is found.
func MergeAll(configs []*Config) (*Config, error) {
	if len(configs) == 0 {
		return nil, fmt.Errorf("no configs to merge")
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		var err error
		result, err = Merge(result, configs[i])
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func mergeVersion(base, overlay int, out *int) error {
	switch {
	case base == 0 && overlay == 0:
		*out = 0
	case base == 0:
		*out = overlay
	case overlay == 0:
		*out = base
	case base == overlay:
		*out = base
	default:
		return fmt.Errorf("config version mismatch: one layer declares version %d, another declares version %d; all config layers must agree on version", base, overlay)
	}
	return nil
}

func mergeString(base, overlay string) string {
	if overlay != "" {
		return overlay
	}
	return base
}

func mergeExclude(base, overlay []string) []string {
	if len(base) == 0 {
		return overlay
	}
	if len(overlay) == 0 {
		return base
	}

	seen := make(map[string]bool, len(base)+len(overlay))
	var result []string
	for _, name := range append(append([]string{}, base...), overlay...) {
		if seen[name] {
			continue
		}
		seen[name] = true
		result = append(result, name)
	}
	return result
}
