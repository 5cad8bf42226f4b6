package render

import (
	"fmt"
	"image"
	"strings"

	"golang.org/x/image/draw"
)

// Filter selects the resampling kernel.
type Filter uint8

const (
	// FilterNearest picks exactly one source pixel per cell. Colors stay
	// unblended so neighboring cells repeat colors and escapes stay rare.
	FilterNearest Filter = iota
	FilterBilinear
	FilterCatmullRom
)

func (f Filter) String() string {
	switch f {
	case FilterNearest:
		return "nearest"
	case FilterBilinear:
		return "bilinear"
	case FilterCatmullRom:
		return "catmullrom"
	default:
		return fmt.Sprintf("Filter(%d)", uint8(f))
	}
}

// ParseFilter accepts the names used on the command line.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(s) {
	case "nearest", "nn", "":
		return FilterNearest, nil
	case "bilinear", "linear":
		return FilterBilinear, nil
	case "catmullrom", "cubic":
		return FilterCatmullRom, nil
	}
	return 0, fmt.Errorf("unknown filter %q", s)
}

func (f Filter) scaler() draw.Scaler {
	switch f {
	case FilterBilinear:
		return draw.ApproxBiLinear
	case FilterCatmullRom:
		return draw.CatmullRom
	default:
		return draw.NearestNeighbor
	}
}

// Resample scales src to width x height cells with the nearest-neighbor
// filter.
func Resample(src image.Image, width, height int) *PixelBuffer {
	return resample(src, width, height, FilterNearest)
}

func resample(src image.Image, width, height int, f Filter) *PixelBuffer {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	f.scaler().Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return pixelBufferFromNRGBA(dst)
}
