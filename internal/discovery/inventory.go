package discovery

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"jtr/internal/domain"
)

// FileTests holds the tests found in one file
type FileTests struct {
	Path  string
	File  *domain.TestFile
	Names []string // Full test names in source order
	Err   error    // Read error, if any
}

// Inventory parses many test files in parallel
type Inventory struct {
	parser  *Parser
	workers int
}

// NewInventory creates an Inventory that parses up to workers files at once
func NewInventory(parser *Parser, workers int) *Inventory {
	if workers <= 0 {
		workers = 1
	}
	return &Inventory{parser: parser, workers: workers}
}

// Collect parses files and returns one entry per file, in the input order.
// A file that cannot be read is reported in its entry, not as an error;
// the returned error is only set when ctx is cancelled.
// onDone, when non-nil, is called after each file and may be called concurrently.
func (inv *Inventory) Collect(ctx context.Context, files []string, onDone func(FileTests)) ([]FileTests, error) {
	results := make([]FileTests, len(files))
	if len(files) == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(inv.workers, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			entry := FileTests{Path: path}
			file, err := inv.parser.ParseFile(path)
			if err != nil {
				slog.Debug("skipping unreadable test file", "path", path, "error", err)
				entry.Err = err
			} else {
				entry.File = file
				entry.Names = FullTestNames(file.Blocks())
			}

			results[i] = entry
			if onDone != nil {
				onDone(entry)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
