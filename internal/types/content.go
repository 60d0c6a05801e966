package types

// ContentType is the kind of a content block.
type ContentType string

// Content block kinds. Exactly one payload field is populated per block,
// selected by the type.
const (
	ContentText  ContentType = "TEXT"
	ContentCode  ContentType = "CODE"
	ContentMath  ContentType = "MATH"
	ContentGraph ContentType = "GRAPH"
)

// GraphPoint is a single (x, y) coordinate of a plotted series.
type GraphPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// GraphSpec is the structured description carried by a GRAPH block.
type GraphSpec struct {
	Title     string       `json:"title"`
	XLabel    string       `json:"xLabel,omitempty"`
	YLabel    string       `json:"yLabel,omitempty"`
	Functions []string     `json:"functions,omitempty"` // expressions to plot, e.g. "y = x^2"
	Points    []GraphPoint `json:"points,omitempty"`
}

// ContentBlock is one atomic unit of lesson material. Order is the dense
// 1-based position within the lesson's flattened block sequence, assigned
// by the pipeline regardless of any order hint in raw model output.
type ContentBlock struct {
	ID    string      `json:"id"`
	Order int         `json:"order"`
	Type  ContentType `json:"type"`
	Text  string      `json:"text,omitempty"`
	Code  string      `json:"code,omitempty"`
	Math  string      `json:"math,omitempty"`
	Graph *GraphSpec  `json:"graph,omitempty"`
}

// PayloadMatchesType reports whether exactly one payload field is
// populated and it is the one selected by Type. A violation is a
// data-contract bug, not a recoverable runtime state.
func (b *ContentBlock) PayloadMatchesType() bool {
	populated := 0
	if b.Text != "" {
		populated++
	}
	if b.Code != "" {
		populated++
	}
	if b.Math != "" {
		populated++
	}
	if b.Graph != nil {
		populated++
	}
	if populated != 1 {
		return false
	}
	switch b.Type {
	case ContentText:
		return b.Text != ""
	case ContentCode:
		return b.Code != ""
	case ContentMath:
		return b.Math != ""
	case ContentGraph:
		return b.Graph != nil
	default:
		return false
	}
}
