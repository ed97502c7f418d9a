package mot

// IoU calculates Intersection over Union between two rectangles.
// Both rectangles must be in the same coordinate space.
func IoU(r1, r2 Rectangle) float64 {
	xA := maxFloat64(r1.X, r2.X)
	yA := maxFloat64(r1.Y, r2.Y)
	xB := minFloat64(r1.X+r1.Width, r2.X+r2.Width)
	yB := minFloat64(r1.Y+r1.Height, r2.Y+r2.Height)

	// No intersection
	if xB < xA || yB < yA {
		return 0.0
	}

	interArea := (xB - xA) * (yB - yA)
	unionArea := r1.Area() + r2.Area() - interArea
	// Two degenerate boxes touching each other: nothing to divide by
	if unionArea <= 0 {
		return 0.0
	}
	return interArea / unionArea
}

func maxFloat64(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minFloat64(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
