package qrcode

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/prasetyowira/qrgen/constant"
)

// ParseHexColor parses "#rgb" or "#rrggbb" into an opaque colour
func ParseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if (len(s) != 4 && len(s) != 7) || !strings.HasPrefix(s, "#") {
		return color.RGBA{}, fmt.Errorf("%s %q", constant.ErrInvalidColor, s)
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%s %q: %w", constant.ErrInvalidColor, s, err)
	}

	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
