// Package projectcfg loads a velab.toml project file into a
// compilation.Options value, the same way a checked-in config block lets a
// team pin its elaboration knobs without
// repeating -D/--flag incantations on every invocation.
package projectcfg

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"velab/internal/compilation"
	"velab/internal/constval"
	"velab/internal/eval"
)

// File is the on-disk shape of velab.toml. Every field is optional; only
// the ones present override compilation.DefaultOptions.
type File struct {
	MaxInstanceDepth       int               `toml:"max_instance_depth"`
	MaxDefparamSteps       int               `toml:"max_defparam_steps"`
	MaxGenerateSteps       int               `toml:"max_generate_steps"`
	MaxConstexprSteps      int               `toml:"max_constexpr_steps"`
	MaxConstexprDepth      int               `toml:"max_constexpr_depth"`
	MaxConstexprBacktrace  int               `toml:"max_constexpr_backtrace"`
	TypoCorrectionLimit    int               `toml:"typo_correction_limit"`
	DisableInstanceCaching bool              `toml:"disable_instance_caching"`
	ErrorLimit             int               `toml:"error_limit"`
	TopModules             []string          `toml:"top_modules"`
	MinTypMax              string            `toml:"min_typ_max"`
	LintMode               bool              `toml:"lint_mode"`
	SuppressUnused         bool              `toml:"suppress_unused"`
	ParamOverrides         map[string]string `toml:"param_overrides"`
}

// Load parses path and merges it onto compilation.DefaultOptions(), so a
// project file only needs to name the knobs it actually wants to change.
func Load(path string) (compilation.Options, error) {
	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return compilation.Options{}, fmt.Errorf("projectcfg: %w", err)
	}
	return f.Options(), nil
}

// Options converts the parsed file into compilation.Options, applying
// non-zero overrides on top of DefaultOptions.
func (f File) Options() compilation.Options {
	o := compilation.DefaultOptions()
	if f.MaxInstanceDepth > 0 {
		o.MaxInstanceDepth = f.MaxInstanceDepth
	}
	if f.MaxDefparamSteps > 0 {
		o.MaxDefparamSteps = f.MaxDefparamSteps
	}
	if f.MaxGenerateSteps > 0 {
		o.MaxGenerateSteps = f.MaxGenerateSteps
	}
	if f.MaxConstexprSteps > 0 {
		o.MaxConstexprSteps = f.MaxConstexprSteps
	}
	if f.MaxConstexprDepth > 0 {
		o.MaxConstexprDepth = f.MaxConstexprDepth
	}
	if f.MaxConstexprBacktrace > 0 {
		o.MaxConstexprBacktrace = f.MaxConstexprBacktrace
	}
	if f.TypoCorrectionLimit > 0 {
		o.TypoCorrectionLimit = f.TypoCorrectionLimit
	}
	if f.ErrorLimit > 0 {
		o.ErrorLimit = f.ErrorLimit
	}
	o.DisableInstanceCaching = f.DisableInstanceCaching
	o.LintMode = f.LintMode
	o.SuppressUnused = f.SuppressUnused
	if len(f.TopModules) > 0 {
		o.TopModules = f.TopModules
	}
	switch strings.ToLower(f.MinTypMax) {
	case "min":
		o.MinTypMax = eval.TimingMin
	case "max":
		o.MinTypMax = eval.TimingMax
	default:
		o.MinTypMax = eval.TimingTyp
	}
	if len(f.ParamOverrides) > 0 {
		o.ParamOverrides = buildOverrideTree(f.ParamOverrides)
	}
	return o
}

// buildOverrideTree turns velab.toml's flat "top.sub.WIDTH = 8" entries into
// the nested compilation.ParamOverrideNode tree instantiate() walks, one
// dotted hierarchical path segment per tree level.
func buildOverrideTree(flat map[string]string) *compilation.ParamOverrideNode {
	root := &compilation.ParamOverrideNode{
		Overrides: map[string]constval.Value{},
		Children:  map[string]*compilation.ParamOverrideNode{},
	}
	for path, raw := range flat {
		parts := strings.Split(path, ".")
		if len(parts) < 2 {
			continue
		}
		node := root
		for _, inst := range parts[:len(parts)-1] {
			child, ok := node.Children[inst]
			if !ok {
				child = &compilation.ParamOverrideNode{
					Overrides: map[string]constval.Value{},
					Children:  map[string]*compilation.ParamOverrideNode{},
				}
				node.Children[inst] = child
			}
			node = child
		}
		node.Overrides[parts[len(parts)-1]] = parseOverrideValue(raw)
	}
	return root
}

func parseOverrideValue(raw string) constval.Value {
	if n, err := strconv.ParseInt(raw, 0, 64); err == nil {
		return constval.FromInteger(constval.FromInt64(32, true, n))
	}
	return constval.FromString(raw)
}
