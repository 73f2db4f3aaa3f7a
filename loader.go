package formdata

import (
	"context"
	"fmt"
	"log/slog"
)

// ProgressCallback is called once per loaded path, in completion order,
// after all reads succeed.
type ProgressCallback func(loaded, total int, path string)

// LoadOptions configures LoadFiles.
type LoadOptions struct {
	Runner   Runner // nil → DefaultRunner
	Log      *slog.Logger
	Progress ProgressCallback
}

func WithLoadRunner(r Runner) func(*LoadOptions) {
	return func(o *LoadOptions) { o.Runner = r }
}

func WithLoadLogger(log *slog.Logger) func(*LoadOptions) {
	return func(o *LoadOptions) { o.Log = log }
}

func WithLoadProgress(cb ProgressCallback) func(*LoadOptions) {
	return func(o *LoadOptions) { o.Progress = cb }
}

// LoadFiles reads paths concurrently. The result has the same order as
// paths; the first failure cancels the remaining reads.
func LoadFiles(ctx context.Context, paths []string, optFns ...func(*LoadOptions)) ([]File, error) {
	var opts LoadOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}

	r := opts.Runner
	if r == nil {
		r = DefaultRunner(ctx)
	}
	// Tasks also watch the runner's derived ctx so a failed read stops the rest.
	egCtx := ctx
	if d, ok := r.(*errGroupRunner); ok {
		egCtx = d.ctx
	}

	files := make([]File, len(paths))
	done := make(chan string, len(paths))

	log.Debug("Loading files", "count", len(paths))
	for i, path := range paths {
		r.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := egCtx.Err(); err != nil {
				return err
			}
			f, err := NewFileFromPath(path)
			if err != nil {
				return fmt.Errorf("load %s: %w", path, err)
			}
			files[i] = f
			done <- path
			log.Debug("Loaded file", "path", path, "mime_type", f.MimeType(), "size", len(f.Data()))
			return nil
		})
	}

	if err := r.Wait(); err != nil {
		return nil, err
	}
	close(done)

	if opts.Progress != nil {
		loaded := 0
		for path := range done {
			loaded++
			opts.Progress(loaded, len(paths), path)
		}
	}
	return files, nil
}
