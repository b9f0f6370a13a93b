package brush

import "image"

// Selection is an inclusive tile rectangle. Start is always <= End once
// Select has run.
type Selection struct {
	StartX, StartY int
	EndX, EndY     int
	Active         bool
}

// Select activates the selection over the rectangle spanned by the two
// corners, in any drag direction.
func (s *Selection) Select(x0, y0, x1, y1 int) {
	s.StartX, s.EndX = min(x0, x1), max(x0, x1)
	s.StartY, s.EndY = min(y0, y1), max(y0, y1)
	s.Active = true
}

func (s *Selection) Deselect() {
	*s = Selection{}
}

// FitLayer clamps the selection to a w x h layer. The selection is dropped
// when it no longer intersects the layer.
func (s *Selection) FitLayer(w, h int) {
	if !s.Active {
		return
	}
	if w <= 0 || h <= 0 || s.StartX >= w || s.StartY >= h || s.EndX < 0 || s.EndY < 0 {
		s.Deselect()
		return
	}
	s.StartX = clamp(s.StartX, 0, w-1)
	s.StartY = clamp(s.StartY, 0, h-1)
	s.EndX = clamp(s.EndX, 0, w-1)
	s.EndY = clamp(s.EndY, 0, h-1)
}

// Rect returns the selection as a half-open rectangle.
func (s Selection) Rect() image.Rectangle {
	if !s.Active {
		return image.Rectangle{}
	}
	return image.Rect(s.StartX, s.StartY, s.EndX+1, s.EndY+1)
}

func (s Selection) Width() int  { return s.EndX - s.StartX + 1 }
func (s Selection) Height() int { return s.EndY - s.StartY + 1 }
