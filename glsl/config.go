/*
Package glsl renders a dot2shader.PixelArt as GLSL shader source according
to a DisplayConfig.

The generated shader reconstructs the image from a palette array and an
index buffer, which is bit-packed into 32-bit words whenever the palette is
small enough.
*/
package glsl

import (
	"encoding/json"
	"fmt"
	"io"
)

// PaletteFormat selects how palette colors are written into the shader.
type PaletteFormat int

const (
	// IntDecimal writes a color as one decimal integer, e.g. 11596387.
	IntDecimal PaletteFormat = iota
	// IntHex writes a color as one hexadecimal integer, e.g. 0xb0f263.
	IntHex
	// RGBDecimal writes a color as vec3(176, 242, 99) / 255.0.
	RGBDecimal
	// RGBHex writes a color as vec3(0xb0, 0xf2, 0x63) / 255.0.
	RGBHex
	// RGBFloat writes a color as vec3(0.690, 0.949, 0.388).
	RGBFloat
)

var paletteFormatNames = map[PaletteFormat]string{
	IntDecimal: "IntDecimal",
	IntHex:     "IntHex",
	RGBDecimal: "RGBDecimal",
	RGBHex:     "RGBHex",
	RGBFloat:   "RGBFloat",
}

func (f PaletteFormat) isInteger() bool {
	return f == IntDecimal || f == IntHex
}

// elementType returns the GLSL type of one palette entry.
func (f PaletteFormat) elementType() string {
	if f.isInteger() {
		return "int"
	}
	return "vec3"
}

func (f PaletteFormat) String() string {
	return paletteFormatNames[f]
}

// MarshalJSON encodes the format as its name.
func (f PaletteFormat) MarshalJSON() ([]byte, error) {
	name, ok := paletteFormatNames[f]
	if !ok {
		return nil, fmt.Errorf("glsl: unknown palette format %d", int(f))
	}
	return json.Marshal(name)
}

// UnmarshalJSON decodes the format from its name.
func (f *PaletteFormat) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for v, n := range paletteFormatNames {
		if n == name {
			*f = v
			return nil
		}
	}
	return fmt.Errorf("glsl: unknown palette format %q", name)
}

// InlineLevel selects how specialized the emitted shader text is.
type InlineLevel int

const (
	// InlineNone emits named constants for every size-dependent quantity;
	// the code can be reused for another image by substituting constants.
	InlineNone InlineLevel = iota
	// InlineVariable bakes every size-dependent quantity into the formulas
	// as a literal, specializing the code to this exact image.
	InlineVariable
	// InlineGeekest emits a single minified statement for hosts that only
	// predefine the fragment coordinate, resolution, and output variables.
	InlineGeekest
)

var inlineLevelNames = map[InlineLevel]string{
	InlineNone:     "None",
	InlineVariable: "InlineVariable",
	InlineGeekest:  "Geekest",
}

func (l InlineLevel) String() string {
	return inlineLevelNames[l]
}

// MarshalJSON encodes the level as its name.
func (l InlineLevel) MarshalJSON() ([]byte, error) {
	name, ok := inlineLevelNames[l]
	if !ok {
		return nil, fmt.Errorf("glsl: unknown inline level %d", int(l))
	}
	return json.Marshal(name)
}

// UnmarshalJSON decodes the level from its name.
func (l *InlineLevel) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for v, n := range inlineLevelNames {
		if n == name {
			*l = v
			return nil
		}
	}
	return fmt.Errorf("glsl: unknown inline level %q", name)
}

// BufferFormat controls how the index buffer is laid out and packed.
type BufferFormat struct {
	// ReverseRows stores the bottom pixel row first so the shader can use
	// a bottom-left-origin index without flipping the y-axis itself.
	ReverseRows bool `json:"reverseRows"`
	// ReverseEachChunk folds each chunk in reverse order, placing the
	// chunk's first index in the low-order bits of the packed word.
	ReverseEachChunk bool `json:"reverseEachChunk"`
	// ForceToRaw skips packing even when the palette is small enough.
	ForceToRaw bool `json:"forceToRaw"`
}

// DisplayConfig is the full rendering configuration. Values are compared by
// structural equality.
type DisplayConfig struct {
	BufferFormat  BufferFormat  `json:"bufferFormat"`
	PaletteFormat PaletteFormat `json:"paletteFormat"`
	InlineLevel   InlineLevel   `json:"inlineLevel"`
}

// DefaultConfig returns the documented default configuration.
func DefaultConfig() DisplayConfig {
	return DisplayConfig{
		BufferFormat: BufferFormat{
			ReverseRows:      true,
			ReverseEachChunk: true,
			ForceToRaw:       false,
		},
		PaletteFormat: RGBDecimal,
		InlineLevel:   InlineNone,
	}
}

// normalize applies the Geekest overrides: the minimal-preamble host only
// tolerates the float palette form and the packed buffer with
// bottom-row-first, low-bits-first layout, so those settings are forced
// regardless of what the caller asked for.
func (c DisplayConfig) normalize() DisplayConfig {
	if c.InlineLevel == InlineGeekest {
		c.PaletteFormat = RGBFloat
		c.BufferFormat = BufferFormat{
			ReverseRows:      true,
			ReverseEachChunk: true,
			ForceToRaw:       false,
		}
	}
	return c
}

// LoadConfig reads a DisplayConfig from r. Unknown fields are ignored and
// missing fields keep their defaults.
func LoadConfig(r io.Reader) (DisplayConfig, error) {
	c := DefaultConfig()
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return DefaultConfig(), err
	}
	return c, nil
}

// SaveConfig writes c to w as indented JSON.
func SaveConfig(w io.Writer, c DisplayConfig) error {
	e := json.NewEncoder(w)
	e.SetIndent("", "    ")
	return e.Encode(c)
}
