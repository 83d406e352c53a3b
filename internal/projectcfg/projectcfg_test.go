package projectcfg

import (
	"os"
	"path/filepath"
	"testing"

	"velab/internal/compilation"
	"velab/internal/eval"
)

func TestOptionsAppliesOnlyNonZeroOverrides(t *testing.T) {
	f := File{MaxInstanceDepth: 5, ErrorLimit: 2}
	o := f.Options()
	if o.MaxInstanceDepth != 5 {
		t.Fatalf("expected an explicit MaxInstanceDepth override to apply, got %d", o.MaxInstanceDepth)
	}
	if o.ErrorLimit != 2 {
		t.Fatalf("expected an explicit ErrorLimit override to apply, got %d", o.ErrorLimit)
	}
	if o.MaxGenerateSteps != compilation.DefaultOptions().MaxGenerateSteps {
		t.Fatalf("expected an unset field to keep the default, got %d", o.MaxGenerateSteps)
	}
}

func TestOptionsMinTypMaxDefaultsToTyp(t *testing.T) {
	f := File{}
	o := f.Options()
	if o.MinTypMax != eval.TimingTyp {
		t.Fatalf("expected an unset min_typ_max to default to typ, got %v", o.MinTypMax)
	}
}

func TestOptionsMinTypMaxHonorsMinAndMax(t *testing.T) {
	for _, tc := range []struct {
		raw  string
		want eval.TimingMode
	}{
		{"min", eval.TimingMin},
		{"MAX", eval.TimingMax},
		{"typ", eval.TimingTyp},
	} {
		o := File{MinTypMax: tc.raw}.Options()
		if o.MinTypMax != tc.want {
			t.Fatalf("min_typ_max=%q: expected %v, got %v", tc.raw, tc.want, o.MinTypMax)
		}
	}
}

func TestOptionsBuildsParamOverrideTree(t *testing.T) {
	f := File{ParamOverrides: map[string]string{
		"top.sub.WIDTH": "16",
		"top.NAME":      "hello",
	}}
	o := f.Options()
	if o.ParamOverrides == nil {
		t.Fatalf("expected a non-nil override tree")
	}
	child := o.ParamOverrides.Children["top"]
	if child == nil {
		t.Fatalf("expected a 'top' child node")
	}
	nameVal, ok := child.Overrides["NAME"]
	if !ok || nameVal.Str != "hello" {
		t.Fatalf("expected top.NAME to be the string 'hello', got %+v", nameVal)
	}
	grandchild := child.Children["sub"]
	if grandchild == nil {
		t.Fatalf("expected a nested 'top.sub' child node")
	}
	widthVal, ok := grandchild.Overrides["WIDTH"]
	if !ok {
		t.Fatalf("expected top.sub.WIDTH to be present")
	}
	n, ok := widthVal.Int.AsInt64()
	if !ok || n != 16 {
		t.Fatalf("expected top.sub.WIDTH to parse as the integer 16, got %+v", widthVal)
	}
}

func TestOptionsIgnoresOverridesWithoutAnInstancePrefix(t *testing.T) {
	f := File{ParamOverrides: map[string]string{"WIDTH": "8"}}
	o := f.Options()
	if o.ParamOverrides != nil && len(o.ParamOverrides.Children) != 0 {
		t.Fatalf("expected a bare name with no instance prefix to be dropped, got %+v", o.ParamOverrides)
	}
}

func TestLoadParsesTomlFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "velab.toml")
	content := "max_instance_depth = 10\nlint_mode = true\ntop_modules = [\"top\"]\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed writing fixture toml: %v", err)
	}

	o, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.MaxInstanceDepth != 10 {
		t.Fatalf("expected max_instance_depth=10, got %d", o.MaxInstanceDepth)
	}
	if !o.LintMode {
		t.Fatalf("expected lint_mode=true")
	}
	if len(o.TopModules) != 1 || o.TopModules[0] != "top" {
		t.Fatalf("expected top_modules=[top], got %v", o.TopModules)
	}
}

func TestLoadReportsErrorOnMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil {
		t.Fatalf("expected an error for a missing project file")
	}
}
