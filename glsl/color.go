package glsl

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// floatChannel renders one color channel as a GLSL float literal, rounded
// to three decimal places. Compact mode trims trailing zeros and the
// leading zero, since the target grammar permits both.
func floatChannel(c uint32, compact bool) string {
	s := strconv.FormatFloat(math.Round(float64(c)/255.0*1000)/1000, 'f', 3, 64)
	if !compact {
		return s
	}
	s = strings.TrimRight(s, "0")
	if strings.HasPrefix(s, "0.") && len(s) > 2 {
		s = s[1:]
	}
	return s
}

// writeColor appends one palette entry to sb as a literal in the requested
// format. Compact mode drops all spacing.
func writeColor(sb *strings.Builder, format PaletteFormat, color uint32, compact bool) {
	space, zero := " ", "0"
	if compact {
		space, zero = "", ""
	}
	r := color >> 16 & 0xff
	g := color >> 8 & 0xff
	b := color & 0xff
	switch format {
	case IntDecimal:
		sb.WriteString(strconv.FormatUint(uint64(color), 10))
	case IntHex:
		fmt.Fprintf(sb, "%#x", color)
	case RGBDecimal:
		fmt.Fprintf(sb, "vec3(%d,%s%d,%s%d)%s/%s255.%s", r, space, g, space, b, space, space, zero)
	case RGBHex:
		fmt.Fprintf(sb, "vec3(%#x,%s%#x,%s%#x)%s/%s255.%s", r, space, g, space, b, space, space, zero)
	case RGBFloat:
		fr := floatChannel(r, compact)
		fg := floatChannel(g, compact)
		fb := floatChannel(b, compact)
		if fr == fg && fg == fb {
			fmt.Fprintf(sb, "vec3(%s)", fr)
		} else {
			fmt.Fprintf(sb, "vec3(%s,%s%s,%s%s)", fr, space, fg, space, fb)
		}
	}
}
