package glsl

import (
	"strconv"
	"strings"

	"github.com/bodgit/dot2shader"
)

// Display pairs a PixelArt with a DisplayConfig. It is a read-only view;
// rendering never mutates either input, so a Display is cheap to construct
// and discard on every configuration change.
type Display struct {
	art    *dot2shader.PixelArt
	config DisplayConfig
}

// NewDisplay returns a Display for art under config, with the Geekest
// overrides already applied.
func NewDisplay(art *dot2shader.PixelArt, config DisplayConfig) *Display {
	return &Display{
		art:    art,
		config: config.normalize(),
	}
}

// Render returns art rendered as shader text under config. It is a
// convenience wrapper around NewDisplay.
func Render(art *dot2shader.PixelArt, config DisplayConfig) string {
	return NewDisplay(art, config).Render()
}

type delims struct {
	ret    string
	indent string
	space  string
	semi   string
}

func (l InlineLevel) delims() delims {
	if l == InlineGeekest {
		return delims{}
	}
	return delims{
		ret:    "\n",
		indent: "    ",
		space:  " ",
		semi:   ";",
	}
}

func intType(intable bool) string {
	if intable {
		return "int"
	}
	return "uint"
}

func intSuffix(intable bool) string {
	if intable {
		return ""
	}
	return "U"
}

func (d *Display) compressible() bool {
	return !d.config.BufferFormat.ForceToRaw && d.art.Compressible()
}

// packedBuffer returns the words of the buffer array and whether every word
// fits in a signed 32-bit integer, which decides between int[] and uint[].
func (d *Display) packedBuffer() ([]uint32, bool) {
	buffer := d.art.Buffer()
	if d.config.BufferFormat.ReverseRows {
		buffer = flipRows(buffer, d.art.Width())
	}
	if d.compressible() {
		buffer = packWords(buffer, d.art.BitWidth(), d.config.BufferFormat.ReverseEachChunk)
	}
	var max uint32
	for _, w := range buffer {
		if w > max {
			max = w
		}
	}
	return buffer, max < 1<<31
}

// Render emits the shader text. Geekest mode produces a single compacted
// statement; the other levels produce the palette and buffer declarations,
// the accessor function, and the entry point in spaced form.
func (d *Display) Render() string {
	var sb strings.Builder
	if d.config.InlineLevel == InlineGeekest {
		d.writeGeekest(&sb)
		return sb.String()
	}
	d.writePaletteDecl(&sb)
	intable := d.writeBufferDecl(&sb)
	if d.config.PaletteFormat.isInteger() {
		sb.WriteString(intToRGB)
	}
	d.writeGetColor(&sb, intable)
	d.writeMainImage(&sb)
	return sb.String()
}

func (d *Display) writePaletteArray(sb *strings.Builder) {
	dl := d.config.InlineLevel.delims()
	compact := d.config.InlineLevel == InlineGeekest
	palette := d.art.Palette()
	sb.WriteString(d.config.PaletteFormat.elementType())
	sb.WriteString("[](")
	sb.WriteString(dl.ret)
	for i, c := range palette {
		sb.WriteString(dl.indent)
		writeColor(sb, d.config.PaletteFormat, c, compact)
		if i+1 != len(palette) {
			sb.WriteString(",")
		}
		sb.WriteString(dl.ret)
	}
	sb.WriteString(")")
	sb.WriteString(dl.semi)
	sb.WriteString(dl.ret)
	sb.WriteString(dl.ret)
}

func (d *Display) writePaletteDecl(sb *strings.Builder) {
	sb.WriteString("const ")
	sb.WriteString(d.config.PaletteFormat.elementType())
	sb.WriteString(" PALETTE[] = ")
	d.writePaletteArray(sb)
}

func (d *Display) writeBufferArray(sb *strings.Builder, buffer []uint32, intable bool) {
	dl := d.config.InlineLevel.delims()
	// Packed words wrap every 8 elements; raw values wrap at the image
	// width so the text lines up with pixel rows.
	wrap := 8
	if !d.compressible() {
		wrap = d.art.Width()
	}
	suffix := intSuffix(intable)
	sb.WriteString(intType(intable))
	sb.WriteString("[](")
	sb.WriteString(dl.ret)
	for i, w := range buffer {
		if i%wrap == 0 {
			sb.WriteString(dl.indent)
		}
		sb.WriteString(strconv.FormatUint(uint64(w), 10))
		sb.WriteString(suffix)
		switch {
		case i+1 == len(buffer):
			sb.WriteString(dl.ret)
		case (i+1)%wrap == 0:
			sb.WriteString(",")
			sb.WriteString(dl.ret)
		default:
			sb.WriteString(",")
			sb.WriteString(dl.space)
		}
	}
	sb.WriteString(")")
	sb.WriteString(dl.semi)
	sb.WriteString(dl.ret)
	sb.WriteString(dl.ret)
}

func (d *Display) writeBufferDecl(sb *strings.Builder) bool {
	buffer, intable := d.packedBuffer()
	if d.config.InlineLevel == InlineNone {
		sb.WriteString("const int WIDTH = ")
		sb.WriteString(strconv.Itoa(d.art.Width()))
		sb.WriteString(", HEIGHT = ")
		sb.WriteString(strconv.Itoa(d.art.Height()))
		if d.compressible() {
			sb.WriteString(", CHUNKS_IN_U32 = ")
			sb.WriteString(strconv.Itoa(32 / d.art.BitWidth()))
		}
		sb.WriteString(";\n")
	}
	sb.WriteString("const ")
	sb.WriteString(intType(intable))
	sb.WriteString(" BUFFER[] = ")
	d.writeBufferArray(sb, buffer, intable)
	return intable
}

const intToRGB = `vec3 int2rgb(int color) {
    return vec3((color & 0xff0000) >> 16, (color & 0xff00) >> 8, color & 0xff) / 255.0;
}

`

func (d *Display) writeGetColor(sb *strings.Builder, intable bool) {
	bitWidth := d.art.BitWidth()
	chunkSize := 32 / bitWidth
	inlineNone := d.config.InlineLevel == InlineNone
	reverseRows := d.config.BufferFormat.ReverseRows
	sameSize := d.art.Width() == chunkSize

	width := strconv.Itoa(d.art.Width())
	semiHeight := strconv.Itoa(d.art.Height() - 1)
	if inlineNone {
		width = "WIDTH"
		semiHeight = "HEIGHT - 1"
	}

	sb.WriteString(d.config.PaletteFormat.elementType())
	sb.WriteString(" getColor(in ivec2 u) {\n")

	// The buffer index can be read straight from u only when the image
	// width equals the chunk size, the row order is already flipped, and
	// the word layout is literal; everything else goes through idx. The
	// y-flip for un-reversed rows in particular must never be skipped.
	needIdx := !sameSize || inlineNone || !d.compressible() || !reverseRows
	if needIdx {
		if reverseRows {
			sb.WriteString("    int idx = u.y * " + width + " + u.x;\n")
		} else {
			sb.WriteString("    int idx = (" + semiHeight + " - u.y) * " + width + " + u.x;\n")
		}
	}

	if d.compressible() {
		chunks := strconv.Itoa(chunkSize)
		if inlineNone {
			chunks = "CHUNKS_IN_U32"
		}
		if needIdx {
			sb.WriteString("    u = ivec2(idx % " + chunks + ", idx / " + chunks + ");\n")
			if inlineNone {
				sb.WriteString("    int bitShift = 32 / CHUNKS_IN_U32;\n")
			}
		}
		suffix := intSuffix(intable)
		shift := strconv.Itoa(bitWidth)
		mask := strconv.Itoa(1<<bitWidth - 1) + suffix
		semiChunks := strconv.Itoa(chunkSize - 1)
		if inlineNone {
			shift = "bitShift"
			mask = "(1" + suffix + " << bitShift) - 1" + suffix
			semiChunks = "CHUNKS_IN_U32 - 1"
		}
		if d.config.BufferFormat.ReverseEachChunk {
			sb.WriteString("    return PALETTE[BUFFER[u.y] >> u.x * " + shift + " & " + mask + "];\n")
		} else {
			sb.WriteString("    return PALETTE[BUFFER[u.y] >> (" + semiChunks + " - u.x) * " + shift + " & " + mask + "];\n")
		}
	} else {
		sb.WriteString("    return PALETTE[BUFFER[idx]];\n")
	}
	sb.WriteString("}\n\n")
}

// halfLit formats n/2 as a GLSL float literal.
func halfLit(n int) string {
	if n%2 == 0 {
		return strconv.Itoa(n/2) + ".0"
	}
	return strconv.Itoa(n/2) + ".5"
}

func (d *Display) writeMainImage(sb *strings.Builder) {
	var width, height, floatHeight, halfVec string
	if d.config.InlineLevel == InlineNone {
		width, height = "WIDTH", "HEIGHT"
		floatHeight = "float(HEIGHT)"
		halfVec = "vec2(WIDTH, HEIGHT) / 2.0"
	} else {
		width = strconv.Itoa(d.art.Width())
		height = strconv.Itoa(d.art.Height())
		floatHeight = height + ".0"
		halfVec = "vec2(" + halfLit(d.art.Width()) + ", " + halfLit(d.art.Height()) + ")"
	}
	getColor := "getColor(u)"
	if d.config.PaletteFormat.isInteger() {
		getColor = "int2rgb(getColor(u))"
	}
	sb.WriteString("void mainImage(out vec4 O, in vec2 U) {\n")
	sb.WriteString("    vec2 r = iResolution.xy;\n")
	sb.WriteString("    ivec2 u = ivec2(floor((U - 0.5 * r) / r.y * " + floatHeight + " + " + halfVec + "));\n")
	sb.WriteString("    O.xyz = u == abs(u) && u.x < " + width + " && u.y < " + height + " ? " + getColor + " : vec3(0.5);\n")
	sb.WriteString("}\n")
}

// writeGeekest emits one minified statement for hosts that predefine the
// fragment coordinate FC, the resolution r, and the output o.
func (d *Display) writeGeekest(sb *strings.Builder) {
	w, h := d.art.Width(), d.art.Height()
	sizeVec := "vec2(" + strconv.Itoa(w) + "," + strconv.Itoa(h) + ")"
	if w == h {
		sizeVec = strconv.Itoa(w) + "."
	}
	sb.WriteString("ivec2 u=ivec2(FC.xy/r*" + sizeVec + ");")

	bitWidth := d.art.BitWidth()
	chunkSize := 32 / bitWidth
	if d.compressible() && w != chunkSize {
		sb.WriteString("int i=u.y*" + strconv.Itoa(w) + "+u.x;")
	}
	sb.WriteString("o.xyz=")
	d.writePaletteArray(sb)
	sb.WriteString("[")
	buffer, intable := d.packedBuffer()
	d.writeBufferArray(sb, buffer, intable)
	switch {
	case d.compressible() && w != chunkSize:
		// GPU shift units only look at the low five bits of the shift
		// amount, so i*bitWidth extracts the same field as
		// (i%chunkSize)*bitWidth.
		sb.WriteString("[i/" + strconv.Itoa(chunkSize) + "]>>i*" + strconv.Itoa(bitWidth) + "&" + strconv.Itoa(1<<bitWidth - 1))
	case d.compressible():
		sb.WriteString("[u.y]>>u.x*" + strconv.Itoa(bitWidth) + "&" + strconv.Itoa(1<<bitWidth - 1))
	default:
		sb.WriteString("[u.y*" + strconv.Itoa(w) + "+u.x]")
	}
	sb.WriteString("];")
}
