package pipeline

import (
	"context"
	"fmt"
	"sort"

	"github.com/ppiankov/vkm/internal/worker"
)

// Document is one ingest input for batch processing.
type Document struct {
	Source   string
	SourceID string
	Text     string
}

// DocumentResult pairs a document with its ingest outcome.
type DocumentResult struct {
	Source string
	Result *ProcessResult
	err    error
}

// Err implements worker.Result.
func (r DocumentResult) Err() error { return r.err }

type docJob struct {
	pipeline *Pipeline
	doc      Document
}

func (j docJob) Execute(ctx context.Context) worker.Result {
	res, err := j.pipeline.ProcessText(ctx, j.doc.Source, j.doc.SourceID, j.doc.Text)
	if err != nil {
		err = fmt.Errorf("%s: %w", j.doc.Source, err)
	}
	return DocumentResult{Source: j.doc.Source, Result: res, err: err}
}

// ProcessBatch ingests documents concurrently. Documents must refer to
// distinct sources; concurrent snapshots of one source would race on the
// latest-patch lookup. Results are returned sorted by source, failures
// included, so one bad document never aborts the batch.
func (p *Pipeline) ProcessBatch(ctx context.Context, docs []Document) []DocumentResult {
	seen := make(map[string]bool, len(docs))
	var results []DocumentResult

	pool := worker.NewPool(p.cfg.Cluster.Workers)
	pool.Start()

	for _, doc := range docs {
		if seen[doc.SourceID] {
			results = append(results, DocumentResult{
				Source: doc.Source,
				err:    fmt.Errorf("%s: duplicate source %s in batch", doc.Source, doc.SourceID),
			})
			continue
		}
		seen[doc.SourceID] = true
		pool.Submit(docJob{pipeline: p, doc: doc})
	}

	for _, r := range pool.Wait() {
		results = append(results, r.(DocumentResult))
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Source < results[j].Source })
	return results
}
