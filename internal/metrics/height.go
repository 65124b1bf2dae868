package metrics

import "github.com/san-kum/cycloid/internal/dynamo"

// MaxHeight tracks the highest traced point seen.
type MaxHeight struct {
	name    string
	max     float64
	samples int
}

func NewMaxHeight() *MaxHeight {
	return &MaxHeight{name: "max_height"}
}

func (m *MaxHeight) Name() string { return m.name }

func (m *MaxHeight) Observe(f dynamo.Frame) {
	if m.samples == 0 || f.Point.Y > m.max {
		m.max = f.Point.Y
	}
	m.samples++
}

func (m *MaxHeight) Value() float64 { return m.max }

func (m *MaxHeight) Reset() {
	m.max = 0
	m.samples = 0
}
