package mot

// Rectangle is an axis-aligned box. For tracked objects coordinates are fractions of the frame.
type Rectangle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func NewRect(x, y, width, height float64) Rectangle {
	return Rectangle{
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
	}
}

// NewRectFromCorners creates rectangle from (xmin, ymin, xmax, ymax) corners
func NewRectFromCorners(xmin, ymin, xmax, ymax float64) Rectangle {
	return Rectangle{
		X:      xmin,
		Y:      ymin,
		Width:  xmax - xmin,
		Height: ymax - ymin,
	}
}

// Area returns width*height
func (rect Rectangle) Area() float64 {
	return rect.Width * rect.Height
}

// Relative converts pixel rectangle into fractions of the frame
func (rect Rectangle) Relative(frame FrameSize) Rectangle {
	return Rectangle{
		X:      rect.X / frame.Width,
		Y:      rect.Y / frame.Height,
		Width:  rect.Width / frame.Width,
		Height: rect.Height / frame.Height,
	}
}

// FrameSize is dimensions of a video frame in pixels
type FrameSize struct {
	Width  float64
	Height float64
}

// Valid reports whether both dimensions are positive
func (fs FrameSize) Valid() bool {
	return fs.Width > 0 && fs.Height > 0
}
