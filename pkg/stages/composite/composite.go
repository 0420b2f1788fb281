// Package composite copies resized RGB planes into presentation buffers.
package composite

import (
	"fmt"

	"github.com/user/frameview/pkg/pipeline"
)

// Composite writes src into dst, converting every RGB triple into the
// destination's pixel packing. Both planes must have the same dimensions;
// a mismatch is a caller bug and panics. Composite does not allocate.
func Composite(src *pipeline.RGBPlane, dst *pipeline.DestinationPlane) {
	if src.Width != dst.Width || src.Height != dst.Height {
		panic(fmt.Sprintf("composite: source %dx%d does not match destination %dx%d",
			src.Width, src.Height, dst.Width, dst.Height))
	}

	pack := packer(dst.Format)
	stride := src.Stride()
	for y := 0; y < src.Height; y++ {
		in := src.Pix[y*stride : (y+1)*stride]
		out := dst.Pix[y*dst.Width : (y+1)*dst.Width]
		for x := range out {
			out[x] = pack(in[x*3], in[x*3+1], in[x*3+2])
		}
	}
}

// Pack converts one RGB triple into the given packing.
func Pack(format pipeline.PixelFormat, r, g, b uint8) uint32 {
	return packer(format)(r, g, b)
}

func packer(format pipeline.PixelFormat) func(r, g, b uint8) uint32 {
	switch format {
	case pipeline.FormatXBGR8888:
		return packXBGR
	case pipeline.FormatRGB565:
		return packRGB565
	default:
		return packXRGB
	}
}

func packXRGB(r, g, b uint8) uint32 {
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

func packXBGR(r, g, b uint8) uint32 {
	return uint32(b)<<16 | uint32(g)<<8 | uint32(r)
}

func packRGB565(r, g, b uint8) uint32 {
	return uint32(r>>3)<<11 | uint32(g>>2)<<5 | uint32(b>>3)
}
