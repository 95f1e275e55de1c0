package detect

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/nicolelu/esign/internal/content"
)

// underscoreRunPattern matches typed blanks like "Name: _______"
var underscoreRunPattern = regexp.MustCompile(`_{3,}`)

// maxSegmentJoinGap is the largest horizontal gap bridged when merging
// collinear segments (dashed underlines) into one blank.
const maxSegmentJoinGap = 6.0

// UnderlineStrategy turns horizontal vector segments and underscore runs into
// blank-field candidates.
type UnderlineStrategy struct {
	config   DetectionConfig
	keywords []keywordRule
}

// NewUnderlineStrategy creates an underline strategy with the given config
func NewUnderlineStrategy(config DetectionConfig, keywords []keywordRule) *UnderlineStrategy {
	return &UnderlineStrategy{config: config, keywords: keywords}
}

// Name identifies the strategy
func (s *UnderlineStrategy) Name() StrategyName {
	return StrategyUnderline
}

// horizontalSegment is a normalized horizontal vector segment
type horizontalSegment struct {
	x1, x2, y float64
}

// DetectPage returns the underline candidates found on a single page
func (s *UnderlineStrategy) DetectPage(page *content.Page) []DetectedField {
	var candidates []DetectedField

	for _, group := range s.groupSegments(s.horizontalSegments(page)) {
		width := group.x2 - group.x1
		if width < s.config.MinUnderlineWidth {
			continue
		}
		candidates = append(candidates, s.blankCandidate(page, group.x1, group.y, width))
	}

	candidates = append(candidates, s.underscoreCandidates(page)...)

	return candidates
}

// horizontalSegments collects the horizontal line primitives on the page.
// Thin, wide rectangles count too; some producers draw rules as filled rects.
func (s *UnderlineStrategy) horizontalSegments(page *content.Page) []horizontalSegment {
	var segments []horizontalSegment
	tol := s.config.UnderlineBandTolerance

	for _, vp := range page.VectorPaths {
		switch vp.Kind {
		case content.PathKindLine:
			if absFloat(vp.Y1-vp.Y2) >= tol {
				continue
			}
			x1, x2 := vp.X1, vp.X2
			if x2 < x1 {
				x1, x2 = x2, x1
			}
			segments = append(segments, horizontalSegment{x1: x1, x2: x2, y: vp.Y1})
		case content.PathKindRect:
			if vp.Rect.Height >= tol*2 || vp.Rect.Width <= vp.Rect.Height {
				continue
			}
			segments = append(segments, horizontalSegment{
				x1: vp.Rect.X,
				x2: vp.Rect.MaxX(),
				y:  vp.Rect.Y + vp.Rect.Height/2,
			})
		}
	}
	return segments
}

// groupSegments merges segments that share a y tolerance band and are
// horizontally contiguous into single blanks. Dashed underlines become one
// candidate; unrelated rules on other bands stay separate.
func (s *UnderlineStrategy) groupSegments(segments []horizontalSegment) []horizontalSegment {
	if len(segments) == 0 {
		return nil
	}

	sort.Slice(segments, func(i, j int) bool {
		return segments[i].y < segments[j].y
	})

	var groups []horizontalSegment
	for _, band := range s.bands(segments) {
		sort.Slice(band, func(i, j int) bool {
			return band[i].x1 < band[j].x1
		})

		current := band[0]
		for _, seg := range band[1:] {
			if seg.x1 <= current.x2+maxSegmentJoinGap {
				if seg.x2 > current.x2 {
					current.x2 = seg.x2
				}
				continue
			}
			groups = append(groups, current)
			current = seg
		}
		groups = append(groups, current)
	}
	return groups
}

// bands splits y-sorted segments into runs whose y coordinates lie within
// the tolerance band
func (s *UnderlineStrategy) bands(sorted []horizontalSegment) [][]horizontalSegment {
	var bands [][]horizontalSegment
	band := []horizontalSegment{sorted[0]}

	for _, seg := range sorted[1:] {
		if absFloat(seg.y-band[0].y) < s.config.UnderlineBandTolerance {
			band = append(band, seg)
			continue
		}
		bands = append(bands, band)
		band = []horizontalSegment{seg}
	}
	return append(bands, band)
}

// blankCandidate builds a candidate field for a detected blank line
func (s *UnderlineStrategy) blankCandidate(page *content.Page, x, y, width float64) DetectedField {
	label := findNearbyLabel(page, x, y, width, s.config.LabelLookupRadius)
	fieldType, classConf, phrase := classifyLabel(s.keywords, label)

	detConf := 0.5
	if label != "" {
		detConf += 0.2
	}
	if width >= s.config.MinUnderlineWidth*1.5 {
		detConf += 0.1
	}

	evidence := "Underline detected (no label)"
	if label != "" {
		evidence = fmt.Sprintf("Underline detected with nearby text: %q", label)
		if phrase != "" {
			evidence += fmt.Sprintf(" (keyword: %q)", phrase)
		}
	}

	footprint := getFieldFootprints()[fieldType]

	return DetectedField{
		PageNumber: page.Number,
		BBox: content.Rect{
			X:      x,
			Y:      y - footprint.Height + 2,
			Width:  width,
			Height: footprint.Height,
		},
		FieldType:                fieldType,
		AssigneeType:             AssigneeRole,
		DetectionConfidence:      clampConfidence(detConf),
		ClassificationConfidence: classConf,
		Evidence:                 evidence,
		Label:                    label,
		SuggestedPlaceholder:     getPlaceholders()[fieldType],
		SourceStrategy:           StrategyUnderline,
	}
}

// underscoreCandidates detects typed blanks like "Email: ____________"
func (s *UnderlineStrategy) underscoreCandidates(page *content.Page) []DetectedField {
	var candidates []DetectedField

	for _, tl := range page.TextLines {
		loc := underscoreRunPattern.FindStringIndex(tl.Text)
		if loc == nil {
			continue
		}

		label := strings.TrimSpace(tl.Text[:loc[0]])
		fieldType, classConf, phrase := classifyLabel(s.keywords, label)

		evidence := "Underscore blank detected"
		if label != "" {
			evidence = fmt.Sprintf("Underscore blank with label: %q", label)
			if phrase != "" {
				evidence += fmt.Sprintf(" (keyword: %q)", phrase)
			}
		}

		candidates = append(candidates, DetectedField{
			PageNumber:               page.Number,
			BBox:                     tl.Rect,
			FieldType:                fieldType,
			AssigneeType:             AssigneeRole,
			DetectionConfidence:      0.8,
			ClassificationConfidence: classConf,
			Evidence:                 evidence,
			Label:                    label,
			SuggestedPlaceholder:     getPlaceholders()[fieldType],
			SourceStrategy:           StrategyUnderline,
		})
	}
	return candidates
}
