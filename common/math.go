package common

import (
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// PerspectiveZO creates a right-handed perspective projection matrix that maps view-space depth
// into the WebGPU clip range [0, 1]. mgl32.Perspective targets the OpenGL [-1, 1] range and
// cannot be handed to a WebGPU pipeline directly.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the column-major projection matrix
func PerspectiveZO(fovY, aspect, near, far float32) mgl32.Mat4 {
	f := 1.0 / float32(math.Tan(float64(fovY)/2.0))

	var out mgl32.Mat4
	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	return out
}

// SphericalToCartesian converts an orbit described by a radius, an azimuth around +Y measured
// from +Z, and an elevation above the XZ plane into an offset from the orbit target.
//
// Parameters:
//   - radius: distance from the target
//   - azimuth: horizontal angle in radians
//   - elevation: vertical angle in radians
//
// Returns:
//   - mgl32.Vec3: the offset from the target
func SphericalToCartesian(radius, azimuth, elevation float32) mgl32.Vec3 {
	cosE := float32(math.Cos(float64(elevation)))
	return mgl32.Vec3{
		radius * cosE * float32(math.Sin(float64(azimuth))),
		radius * float32(math.Sin(float64(elevation))),
		radius * cosE * float32(math.Cos(float64(azimuth))),
	}
}

// CartesianToSpherical is the inverse of SphericalToCartesian. A zero-length offset yields all zeros.
//
// Parameters:
//   - offset: the position relative to the orbit target
//
// Returns:
//   - radius, azimuth, elevation: the orbit coordinates of the offset
func CartesianToSpherical(offset mgl32.Vec3) (radius, azimuth, elevation float32) {
	radius = offset.Len()
	if radius == 0 {
		return 0, 0, 0
	}
	azimuth = float32(math.Atan2(float64(offset.X()), float64(offset.Z())))
	elevation = float32(math.Asin(float64(mgl32.Clamp(offset.Y()/radius, -1, 1))))
	return radius, azimuth, elevation
}
