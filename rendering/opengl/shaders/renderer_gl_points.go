package shaders

import (
	"fmt"

	"github.com/TheRayOfSeasons/tech-sharing-globe/core"
)

// Attribute locations of the globe point program
const (
	PositionLocation    = 0
	UVLocation          = 1
	VertexIDLocation    = 2
	LightFactorLocation = 3
)

// Texture units of the three masks
const (
	ShapeUnit = 0
	AlphaUnit = 1
	ColorUnit = 2
)

// Globe point sprite shaders
const globePointsVertexShader = `#version 410 core

layout(location = 0) in vec3 position;
layout(location = 1) in vec2 uv;
layout(location = 2) in float vertexID;
layout(location = 3) in float lightFactor;

uniform mat4 modelViewMatrix;
uniform mat4 projectionMatrix;
uniform float uSize;
uniform float uScale;

out float vVertexID;
out float vLightFactor;
out vec2 vUv;

void main() {
    vec4 mvPosition = modelViewMatrix * vec4(position, 1.0);

    vUv = uv;
    vVertexID = vertexID;
    vLightFactor = lightFactor;

    // length of the homogeneous view position, w included
    gl_PointSize = uSize * (uScale / length(mvPosition));
    gl_Position = projectionMatrix * mvPosition;
}
`

const globePointsFragmentShaderTemplate = `#version 410 core

uniform float uTime;
uniform vec3 uMinColor;
uniform vec3 uMaxColor;
uniform vec3 uCountryColor;
uniform sampler2D uAlphaMap;
uniform sampler2D uShape;
uniform sampler2D uColorMap;

in float vVertexID;
in float vLightFactor;
in vec2 vUv;

out vec4 outColor;

void main() {
    vec4 alphaColor = texture(uAlphaMap, vUv);
    if (length(alphaColor.rgb) > %.4f) discard;
    if (vVertexID == 0.0) discard;

    vec4 colorMap = texture(uColorMap, vUv);

    float mixStrength = abs(sin(uTime * vLightFactor));

    vec3 color;
    if (length(colorMap.rgb) > %.4f) {
        color = uCountryColor;
    } else {
        color = mix(uMinColor, uMaxColor, mixStrength);
    }

    vec4 shapeData = texture(uShape, gl_PointCoord);
    if (shapeData.a < %.4f) discard;
    outColor = vec4(color, 1.0) * shapeData.a;
}
`

// GlobePointsFragmentShader is the fragment stage with the shading thresholds
// filled in from the core package.
var GlobePointsFragmentShader = fmt.Sprintf(globePointsFragmentShaderTemplate,
	core.MaskThreshold, core.MaskThreshold, core.ShapeAlphaCutoff)

// CreateGlobePointsProgram creates the shader program for the particle globe
func CreateGlobePointsProgram() (uint32, error) {
	return buildProgram("globe points", globePointsVertexShader, GlobePointsFragmentShader)
}
