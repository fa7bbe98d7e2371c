package opengl

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/TheRayOfSeasons/tech-sharing-globe/rendering/textures"
)

// uploadMask creates a mipmapped RGBA texture on the given unit
func uploadMask(m *textures.Mask, unit uint32) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)

	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, tex)

	width, height := m.Size()
	pixels := m.FlippedPixels()
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height),
		0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.GenerateMipmap(gl.TEXTURE_2D)

	return tex
}
