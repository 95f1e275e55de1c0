package detect

import (
	"sort"
)

// Deduplicator merges candidates that refer to the same physical field across
// strategies, resolves conflicts by strategy priority, and drops candidates
// below the confidence threshold.
type Deduplicator struct {
	overlapThreshold    float64
	confidenceThreshold float64
	priority            map[StrategyName]int
}

// NewDeduplicator creates a deduplicator with the given thresholds
func NewDeduplicator(overlapThreshold, confidenceThreshold float64) *Deduplicator {
	return &Deduplicator{
		overlapThreshold:    overlapThreshold,
		confidenceThreshold: confidenceThreshold,
		priority:            getStrategyPriority(),
	}
}

// Merge collapses overlapping same-page candidates into single fields. The
// operation is idempotent: merging an already-merged list is a no-op.
func (d *Deduplicator) Merge(candidates []DetectedField) []DetectedField {
	if len(candidates) == 0 {
		return nil
	}

	clusters := d.cluster(candidates)

	merged := make([]DetectedField, 0, len(clusters))
	for _, cluster := range clusters {
		merged = append(merged, d.resolve(candidates, cluster))
	}

	SortFields(merged)
	return merged
}

// Filter drops candidates whose detection confidence falls below the
// threshold. Raising the threshold can only shrink the result set.
func (d *Deduplicator) Filter(candidates []DetectedField) []DetectedField {
	kept := make([]DetectedField, 0, len(candidates))
	for _, c := range candidates {
		if c.DetectionConfidence >= d.confidenceThreshold {
			kept = append(kept, c)
		}
	}
	return kept
}

// cluster groups candidate indexes by transitive bbox overlap on the same
// page. Transitive closure keeps the merge independent of input order, which
// is what makes deduplication deterministic and idempotent.
func (d *Deduplicator) cluster(candidates []DetectedField) [][]int {
	n := len(candidates)
	visited := make([]bool, n)
	var clusters [][]int

	for i := 0; i < n; i++ {
		if visited[i] {
			continue
		}
		cluster := []int{i}
		visited[i] = true

		for cursor := 0; cursor < len(cluster); cursor++ {
			a := cluster[cursor]
			for j := 0; j < n; j++ {
				if visited[j] {
					continue
				}
				if d.overlaps(candidates[a], candidates[j]) {
					visited[j] = true
					cluster = append(cluster, j)
				}
			}
		}
		clusters = append(clusters, cluster)
	}
	return clusters
}

// overlaps reports whether two candidates refer to the same physical field
func (d *Deduplicator) overlaps(a, b DetectedField) bool {
	if a.PageNumber != b.PageNumber {
		return false
	}
	return a.BBox.IoU(b.BBox) > d.overlapThreshold
}

// resolve picks the winning candidate of a cluster and folds the rest into
// it. The winner keeps its type and assignment; agreement across strategies
// never lowers confidence, so detection confidence is the cluster maximum.
func (d *Deduplicator) resolve(candidates []DetectedField, cluster []int) DetectedField {
	winnerIdx := cluster[0]
	for _, idx := range cluster[1:] {
		if d.beats(candidates[idx], candidates[winnerIdx]) {
			winnerIdx = idx
		}
	}

	winner := candidates[winnerIdx]
	for _, idx := range cluster {
		other := candidates[idx]
		if other.DetectionConfidence > winner.DetectionConfidence {
			winner.DetectionConfidence = other.DetectionConfidence
		}
		if idx != winnerIdx && other.Evidence != "" {
			winner.Evidence += "; merged: " + other.Evidence
		}
	}
	return winner
}

// beats reports whether candidate a outranks candidate b: strategy priority
// first, then detection confidence
func (d *Deduplicator) beats(a, b DetectedField) bool {
	pa, pb := d.priority[a.SourceStrategy], d.priority[b.SourceStrategy]
	if pa != pb {
		return pa > pb
	}
	return a.DetectionConfidence > b.DetectionConfidence
}

// SortFields orders fields by (page, y, x) for deterministic output
func SortFields(fields []DetectedField) {
	sort.SliceStable(fields, func(i, j int) bool {
		if fields[i].PageNumber != fields[j].PageNumber {
			return fields[i].PageNumber < fields[j].PageNumber
		}
		if fields[i].BBox.Y != fields[j].BBox.Y {
			return fields[i].BBox.Y < fields[j].BBox.Y
		}
		return fields[i].BBox.X < fields[j].BBox.X
	})
}
