// Package frontend drives the concurrent file-loading stage that sits in
// front of internal/compilation: reading every source file named by a
// FileSpec and handing each buffer to a caller-supplied BuildTree function
// happens independently per file, so it fans out across goroutines rather
// than running strictly in AddSyntaxTree's call order. Lexing, preprocessing,
// and parsing themselves remain external collaborators —
// BuildTree is where a real front end would plug in; this package only owns
// the scheduling around it.
package frontend

import (
	"context"
	"os"

	"golang.org/x/sync/errgroup"

	"velab/internal/source"
	"velab/internal/syntax"
)

// FileSpec names one source buffer to load, carrying its source_library
// tag through to the parsed tree.
type FileSpec struct {
	Path    string
	Library string
}

// BuildTree turns one file's raw content into a syntax.Tree. Supplied by the
// caller, since internal/frontend has no parser of its own.
type BuildTree func(content []byte, fileID source.FileID, lib string) (*syntax.Tree, error)

// Load reads every spec concurrently (bounded by maxParallel, 0 meaning
// unbounded) and runs build over each buffer, returning trees in the same
// order as specs regardless of completion order. The first error cancels
// the remaining work and is returned.
func Load(ctx context.Context, fs *source.FileSet, specs []FileSpec, maxParallel int, build BuildTree) ([]*syntax.Tree, error) {
	trees := make([]*syntax.Tree, len(specs))
	g, ctx := errgroup.WithContext(ctx)
	if maxParallel > 0 {
		g.SetLimit(maxParallel)
	}
	for i, spec := range specs {
		i, spec := i, spec
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			content, err := os.ReadFile(spec.Path)
			if err != nil {
				return err
			}
			fileID := fs.Add(spec.Path, content, 0, spec.Library)
			tree, err := build(content, fileID, spec.Library)
			if err != nil {
				return err
			}
			trees[i] = tree
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return trees, nil
}
