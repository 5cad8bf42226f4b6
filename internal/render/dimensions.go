package render

import (
	"fmt"
	"math"
)

// Resolve computes the output grid size from the requested width and/or
// height and the source image size. A requested value of 0 means unset.
//
// When only one side is given the other follows the source aspect ratio,
// halved to compensate for terminal cells being about twice as tall as
// they are wide. When both are given they are used as-is.
func Resolve(width, height, srcW, srcH int) (int, int, error) {
	if width < 0 || height < 0 {
		return 0, 0, fmt.Errorf("%w: negative size %dx%d", ErrInvalidDimensions, width, height)
	}

	switch {
	case width == 0 && height == 0:
		return 0, 0, fmt.Errorf("%w: width or height must be specified", ErrInvalidDimensions)
	case height == 0:
		height = scaleSide(width, srcH, srcW)
	case width == 0:
		width = scaleSide(height, srcW, srcH)
	}

	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("%w: resolved to %dx%d from source %dx%d",
			ErrInvalidDimensions, width, height, srcW, srcH)
	}
	return width, height, nil
}

// scaleSide returns ceil(known * opposite / along / 2). A zero source side
// yields 0 so the caller can reject it.
func scaleSide(known, opposite, along int) int {
	if along <= 0 || opposite <= 0 {
		return 0
	}
	v := math.Ceil(float64(known) * float64(opposite) / float64(along) / 2.0)
	if v > math.MaxInt32 {
		return 0
	}
	return int(v)
}
