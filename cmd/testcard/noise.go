package main

import (
	"math"
	"math/rand"
)

// simplex is a seeded 2D simplex noise source.
type simplex struct {
	perm [512]uint8
}

func newSimplex(seed int64) *simplex {
	s := &simplex{}
	r := rand.New(rand.NewSource(seed))
	p := r.Perm(256)
	for i := range s.perm {
		s.perm[i] = uint8(p[i&255])
	}
	return s
}

// gradient dots one of eight fixed directions with (x, y).
func gradient(hash uint8, x, y float64) float64 {
	u, v := x, y
	if hash&4 != 0 {
		u, v = y, x
	}
	if hash&1 != 0 {
		u = -u
	}
	if hash&2 != 0 {
		v = -v
	}
	return u + v
}

const (
	skew   = 0.3660254037844386  // (sqrt(3) - 1) / 2
	unskew = 0.21132486540518713 // (3 - sqrt(3)) / 6
)

// corner is the falloff-weighted contribution of one simplex corner.
func corner(hash uint8, x, y float64) float64 {
	t := 0.5 - x*x - y*y
	if t <= 0 {
		return 0
	}
	t *= t
	return t * t * gradient(hash, x, y)
}

// at returns noise in [-1, 1].
func (s *simplex) at(x, y float64) float64 {
	k := (x + y) * skew
	i := math.Floor(x + k)
	j := math.Floor(y + k)

	u := (i + j) * unskew
	x0, y0 := x-(i-u), y-(j-u)

	// Lower or upper triangle of the skewed cell
	di, dj := 0, 1
	if x0 > y0 {
		di, dj = 1, 0
	}

	x1, y1 := x0-float64(di)+unskew, y0-float64(dj)+unskew
	x2, y2 := x0-1+2*unskew, y0-1+2*unskew

	ii, jj := int(i)&255, int(j)&255
	n := corner(s.perm[ii+int(s.perm[jj])], x0, y0) +
		corner(s.perm[ii+di+int(s.perm[jj+dj])], x1, y1) +
		corner(s.perm[ii+1+int(s.perm[jj+1])], x2, y2)
	return 70 * n
}

// fbm sums octaves of noise at doubling frequency and halving amplitude,
// normalized to [0, 1].
func (s *simplex) fbm(x, y, freq float64, octaves int) float64 {
	var sum, norm float64
	amp := 1.0
	for o := 0; o < octaves; o++ {
		sum += s.at(x*freq, y*freq) * amp
		norm += amp
		freq *= 2
		amp *= 0.5
	}
	v := (sum/norm + 1) / 2
	return math.Max(0, math.Min(1, v))
}
