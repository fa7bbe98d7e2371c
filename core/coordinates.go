package core

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Geographic is a position on the globe surface in degrees
type Geographic struct {
	Lat float32 `json:"lat"` // [-90, 90], positive = north
	Lon float32 `json:"lon"` // [-180, 180], positive = east
}

// Model-space axes follow the sphere layout:
// Y points to the north pole, +X to 0° longitude on the equator and -Z to 90°E.

// UVToGeographic maps an equirectangular texture coordinate to lat/lon.
// u=0.5 is the prime meridian, v=1 the north pole.
func UVToGeographic(u, v float32) Geographic {
	return Geographic{
		Lat: (v - 0.5) * 180,
		Lon: (u - 0.5) * 360,
	}
}

// GeographicToUV is the inverse of UVToGeographic
func GeographicToUV(g Geographic) (u, v float32) {
	g = NormalizeCoordinates(g)
	return g.Lon/360 + 0.5, g.Lat/180 + 0.5
}

// GeographicToCartesian converts a surface position to model space
func GeographicToCartesian(g Geographic, radius float32) mgl32.Vec3 {
	lat := mgl32.DegToRad(g.Lat)
	lon := mgl32.DegToRad(g.Lon)
	cosLat := math32.Cos(lat)

	return mgl32.Vec3{
		radius * cosLat * math32.Cos(lon),
		radius * math32.Sin(lat),
		-radius * cosLat * math32.Sin(lon),
	}
}

// CartesianToGeographic projects a model-space point onto the globe.
// The origin maps to 0°, 0°.
func CartesianToGeographic(p mgl32.Vec3) Geographic {
	r := p.Len()
	if r < 1e-6 {
		return Geographic{}
	}

	return Geographic{
		Lat: mgl32.RadToDeg(math32.Asin(mgl32.Clamp(p.Y()/r, -1, 1))),
		Lon: mgl32.RadToDeg(math32.Atan2(-p.Z(), p.X())),
	}
}

// NormalizeCoordinates clamps latitude and wraps longitude into range
func NormalizeCoordinates(g Geographic) Geographic {
	g.Lat = mgl32.Clamp(g.Lat, -90, 90)

	for g.Lon > 180 {
		g.Lon -= 360
	}
	for g.Lon < -180 {
		g.Lon += 360
	}

	return g
}

// SubCameraPoint returns the globe position directly below the camera,
// taking the globe's current rotation into account.
func (s *Scene) SubCameraPoint() Geographic {
	inverse := mgl32.HomogRotate3DY(-s.RotationY)
	p := inverse.Mul4x1(s.Camera.Position.Vec4(1)).Vec3()
	return CartesianToGeographic(p)
}
