package metrics

import "github.com/san-kum/cycloid/internal/dynamo"

// PathLength sums the straight segments between consecutive traced points.
// With enough frames it approaches the analytic arc length 8a.
type PathLength struct {
	name   string
	length float64
	last   dynamo.Point
	seen   bool
}

func NewPathLength() *PathLength {
	return &PathLength{name: "path_length"}
}

func (p *PathLength) Name() string { return p.name }

func (p *PathLength) Observe(f dynamo.Frame) {
	if p.seen {
		p.length += p.last.Dist(f.Point)
	}
	p.last = f.Point
	p.seen = true
}

func (p *PathLength) Value() float64 { return p.length }

func (p *PathLength) Reset() {
	p.length = 0
	p.last = dynamo.Point{}
	p.seen = false
}
