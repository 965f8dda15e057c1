package exporter

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/wp-hooks/parser/internal/cache"
	"github.com/wp-hooks/parser/internal/parser"
)

// Pipeline runs the parse-then-export sequence over a set of files. Files
// are processed independently and in the order given; a parse failure
// aborts the run rather than returning a partial result.
type Pipeline struct {
	parser *parser.Parser
	store  *cache.Store // nil disables caching

	// OnFile is invoked after each file completes, for progress reporting.
	OnFile func(path string)
}

// NewPipeline creates a pipeline. Pass a nil store to parse everything
// unconditionally.
func NewPipeline(store *cache.Store) *Pipeline {
	return &Pipeline{
		parser: parser.New(),
		store:  store,
	}
}

// Run exports every file in paths against the given project root,
// preserving input order.
func (p *Pipeline) Run(ctx context.Context, root string, paths []string) ([]FileExport, error) {
	exports := make([]FileExport, 0, len(paths))

	for _, path := range paths {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		export, err := p.exportFile(ctx, root, path)
		if err != nil {
			return nil, err
		}
		exports = append(exports, export)

		if p.OnFile != nil {
			p.OnFile(path)
		}
	}

	if p.store != nil {
		if err := p.store.Prune(paths); err != nil {
			return nil, fmt.Errorf("failed to prune cache: %w", err)
		}
	}

	return exports, nil
}

func (p *Pipeline) exportFile(ctx context.Context, root, path string) (FileExport, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return FileExport{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var hash string
	if p.store != nil {
		hash = cache.HashBytes(source)
		if cached, hit, err := p.store.Get(path, hash); err == nil && hit {
			var export FileExport
			if err := json.Unmarshal(cached, &export); err == nil {
				return export, nil
			}
			// A corrupt entry falls through to a fresh parse.
		}
	}

	file, err := p.parser.ParseSource(ctx, path, source)
	if err != nil {
		return FileExport{}, err
	}
	export := Export(file, root)

	if p.store != nil {
		payload, err := json.Marshal(export)
		if err != nil {
			return FileExport{}, err
		}
		if err := p.store.Put(path, hash, payload); err != nil {
			return FileExport{}, err
		}
	}

	return export, nil
}
