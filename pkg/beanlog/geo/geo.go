package geo

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beanlog/beanlog/pkg/beanlog/internalerr"
)

// The provider returns fixed-point integer coordinates; dividing by
// scale yields decimal degrees. mapx maps to longitude and mapy to
// latitude — swapped from the intuitive order. The swap must be
// preserved exactly or every coordinate is silently wrong.
const scale = 1e7

// Normalize converts provider map coordinates into WGS84 degrees.
// It is a pure conversion: no bounds validation happens here, callers
// decide what to do with implausible output (see Plausible).
func Normalize(mapx, mapy string) (lat, lng float64, err error) {
	x, err := strconv.ParseFloat(strings.TrimSpace(mapx), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: mapx %q", internalerr.ErrInvalidInput, mapx)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(mapy), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: mapy %q", internalerr.ErrInvalidInput, mapy)
	}
	return y / scale, x / scale, nil
}

// Plausible reports whether a pair lies within WGS84 range.
func Plausible(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
