package processor

import (
	"context"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/KnockOutEZ/codedigest/internal/models"
)

// ProcessAll processes paths relative to root. Sequential runs keep the
// input order. Parallel runs split paths into at most maxParallelProcesses
// contiguous chunks processed concurrently; order is kept within a chunk and
// the chunk results are joined in chunk order once every chunk is done.
func (p *Processor) ProcessAll(ctx context.Context, root string, paths []string) ([]models.FileRecord, error) {
	if !p.cfg.Parallel || len(paths) < 2 {
		return p.processChunk(ctx, root, paths)
	}

	chunks := Chunk(paths, p.cfg.MaxParallelProcesses)
	results := make([][]models.FileRecord, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			records, err := p.processChunk(gctx, root, chunk)
			if err != nil {
				return err
			}
			results[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	records := make([]models.FileRecord, 0, total)
	for _, r := range results {
		records = append(records, r...)
	}
	return records, nil
}

func (p *Processor) processChunk(ctx context.Context, root string, paths []string) ([]models.FileRecord, error) {
	records := make([]models.FileRecord, 0, len(paths))
	for _, rel := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := p.ProcessFile(filepath.Join(root, filepath.FromSlash(rel)), rel)
		if p.bar != nil {
			_ = p.bar.Add(1)
		}
		if err != nil {
			return nil, err
		}
		if record != nil {
			records = append(records, *record)
		}
	}
	return records, nil
}

// Chunk splits paths into at most n contiguous chunks of ceil(len/n) items.
func Chunk(paths []string, n int) [][]string {
	if n < 1 {
		n = 1
	}
	if len(paths) == 0 {
		return nil
	}

	size := (len(paths) + n - 1) / n
	chunks := make([][]string, 0, n)
	for start := 0; start < len(paths); start += size {
		end := start + size
		if end > len(paths) {
			end = len(paths)
		}
		chunks = append(chunks, paths[start:end])
	}
	return chunks
}
