// Package detect implements the multi-strategy signable-field detection and
// role-inference pipeline. Independent strategies propose candidates from
// distinct signal sources (vector underlines, checkbox shapes, label
// keywords, anchor tags, merge placeholders); the pipeline fuses them into
// one deduplicated, confidence-scored field list.
//
// The pipeline is a pure function over an already-materialized
// content.Document: no I/O, no retained state, safe to run concurrently for
// multiple documents.
package detect

import (
	"context"
	"sync"
	"time"

	"github.com/nicolelu/esign/internal/content"
)

// FieldDetector orchestrates the detection strategies over a document
type FieldDetector struct {
	config       DetectionConfig
	strategies   []Strategy
	roleInferrer *RoleInferrer
	dedup        *Deduplicator
}

// NewFieldDetector creates a field detector with the default configuration
func NewFieldDetector() *FieldDetector {
	return NewFieldDetectorWithConfig(DefaultDetectionConfig())
}

// NewFieldDetectorWithConfig creates a field detector with a custom
// configuration. The keyword and role tables are bound here and never change
// for the lifetime of the detector.
func NewFieldDetectorWithConfig(config DetectionConfig) *FieldDetector {
	keywords := getKeywordRules()

	return &FieldDetector{
		config: config,
		strategies: []Strategy{
			NewAnchorTagStrategy(),
			NewSenderVariableStrategy(),
			NewCheckboxStrategy(config),
			NewKeywordStrategy(config, keywords),
			NewUnderlineStrategy(config, keywords),
		},
		roleInferrer: NewRoleInferrer(getRoleRules(), config.LabelLookupRadius),
		dedup:        NewDeduplicator(config.OverlapThreshold, config.DetectionConfidenceThreshold),
	}
}

// Config returns the detector configuration
func (fd *FieldDetector) Config() DetectionConfig {
	return fd.config
}

// Detect runs every strategy over the document content and returns the final
// ordered field list plus run statistics. The run is all-or-nothing: a
// cancelled context aborts with no partial result.
func (fd *FieldDetector) Detect(ctx context.Context, doc *content.Document) (*DetectionResult, error) {
	startTime := time.Now()

	var allCandidates []DetectedField

	for i := range doc.Pages {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		page := &doc.Pages[i]
		for _, candidate := range fd.detectPage(page) {
			fd.roleInferrer.Infer(page, &candidate)
			allCandidates = append(allCandidates, candidate)
		}
	}

	totalCandidates := len(allCandidates)
	merged := fd.dedup.Merge(allCandidates)
	filtered := fd.dedup.Filter(merged)

	return &DetectionResult{
		DetectedFields:     filtered,
		DetectionTimeMS:    float64(time.Since(startTime).Microseconds()) / 1000.0,
		TotalCandidates:    totalCandidates,
		FilteredCandidates: len(filtered),
	}, nil
}

// detectPage runs the strategies concurrently over one page. Each strategy
// writes only its own slot, so the pooled order is fixed by strategy
// registration order no matter which goroutine finishes first.
func (fd *FieldDetector) detectPage(page *content.Page) []DetectedField {
	results := make([][]DetectedField, len(fd.strategies))

	var wg sync.WaitGroup
	for i, strategy := range fd.strategies {
		wg.Add(1)
		go func(slot int, st Strategy) {
			defer wg.Done()
			results[slot] = st.DetectPage(page)
		}(i, strategy)
	}
	wg.Wait()

	var candidates []DetectedField
	for _, r := range results {
		candidates = append(candidates, r...)
	}
	return candidates
}
