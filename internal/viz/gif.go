package viz

import (
	"image"
	"image/gif"
	"os"
	"time"
)

// Recorder rasterises canvas frames into a GIF. Each braille dot becomes a
// dotW×dotH block coloured by its cell's ink.
type Recorder struct {
	frames     []*image.Paletted
	delays     []int
	theme      Theme
	dotW, dotH int
}

func NewRecorder(t Theme) *Recorder {
	return &Recorder{theme: t, dotW: 4, dotH: 4}
}

func (r *Recorder) Len() int { return len(r.frames) }

// Capture appends the canvas as a frame shown for delay.
func (r *Recorder) Capture(c *Canvas, delay time.Duration) {
	imgW, imgH := c.SubWidth()*r.dotW, c.SubHeight()*r.dotH
	img := image.NewPaletted(image.Rect(0, 0, imgW, imgH), r.theme.Palette())

	for y := 0; y < c.SubHeight(); y++ {
		for x := 0; x < c.SubWidth(); x++ {
			if !c.Dot(x, y) {
				continue
			}
			idx := uint8(c.InkAt(x, y))
			for py := 0; py < r.dotH; py++ {
				for px := 0; px < r.dotW; px++ {
					img.SetColorIndex(x*r.dotW+px, y*r.dotH+py, idx)
				}
			}
		}
	}

	r.frames = append(r.frames, img)
	r.delays = append(r.delays, centiseconds(delay))
}

// Hold extends the last frame by d.
func (r *Recorder) Hold(d time.Duration) {
	if len(r.delays) > 0 {
		r.delays[len(r.delays)-1] += centiseconds(d)
	}
}

// Save writes the GIF. loop false plays it once.
func (r *Recorder) Save(path string, loop bool) error {
	anim := gif.GIF{
		Image:     r.frames,
		Delay:     r.delays,
		LoopCount: -1,
	}
	if loop {
		anim.LoopCount = 0
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, &anim)
}

func centiseconds(d time.Duration) int {
	return int(d / (10 * time.Millisecond))
}
