package frontend

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"velab/internal/source"
	"velab/internal/syntax"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed writing fixture file: %v", err)
	}
	return path
}

func TestLoadPreservesOrderAcrossConcurrentBuilds(t *testing.T) {
	dir := t.TempDir()
	a := writeTempFile(t, dir, "a.sv", "module a; endmodule")
	b := writeTempFile(t, dir, "b.sv", "module b; endmodule")
	c := writeTempFile(t, dir, "c.sv", "module c; endmodule")

	fs := source.NewFileSet()
	specs := []FileSpec{{Path: a, Library: "lib_a"}, {Path: b, Library: "lib_b"}, {Path: c, Library: "lib_c"}}

	build := func(content []byte, fileID source.FileID, lib string) (*syntax.Tree, error) {
		sb := syntax.NewBuilder()
		return syntax.NewTree(1, fileID, lib, nil, sb), nil
	}

	trees, err := Load(context.Background(), fs, specs, 0, build)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trees) != 3 {
		t.Fatalf("expected 3 trees, got %d", len(trees))
	}
	for i, want := range []string{"lib_a", "lib_b", "lib_c"} {
		if trees[i].SourceLib != want {
			t.Fatalf("tree %d: expected lib %q, got %q", i, want, trees[i].SourceLib)
		}
	}
}

func TestLoadFailsFastOnMissingFile(t *testing.T) {
	dir := t.TempDir()
	ok := writeTempFile(t, dir, "ok.sv", "module ok; endmodule")
	missing := filepath.Join(dir, "does-not-exist.sv")

	fs := source.NewFileSet()
	specs := []FileSpec{{Path: ok}, {Path: missing}}

	build := func(content []byte, fileID source.FileID, lib string) (*syntax.Tree, error) {
		return syntax.NewTree(1, fileID, lib, nil, syntax.NewBuilder()), nil
	}

	_, err := Load(context.Background(), fs, specs, 0, build)
	if err == nil {
		t.Fatalf("expected an error for a missing source file")
	}
}

func TestLoadPropagatesBuildError(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "bad.sv", "not valid")
	fs := source.NewFileSet()
	specs := []FileSpec{{Path: path}}

	wantErr := errors.New("parse failure")
	build := func(content []byte, fileID source.FileID, lib string) (*syntax.Tree, error) {
		return nil, wantErr
	}

	_, err := Load(context.Background(), fs, specs, 0, build)
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected the build error to propagate, got %v", err)
	}
}

func TestLoadRespectsMaxParallelLimit(t *testing.T) {
	dir := t.TempDir()
	var specs []FileSpec
	for i := 0; i < 5; i++ {
		p := writeTempFile(t, dir, filepathBase(i), "module m; endmodule")
		specs = append(specs, FileSpec{Path: p})
	}
	fs := source.NewFileSet()

	build := func(content []byte, fileID source.FileID, lib string) (*syntax.Tree, error) {
		return syntax.NewTree(1, fileID, lib, nil, syntax.NewBuilder()), nil
	}

	trees, err := Load(context.Background(), fs, specs, 2, build)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trees) != 5 {
		t.Fatalf("expected 5 trees, got %d", len(trees))
	}
}

func filepathBase(i int) string {
	return "m" + string(rune('0'+i)) + ".sv"
}
