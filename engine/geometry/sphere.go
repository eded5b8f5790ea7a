package geometry

import (
	"math"

	"github.com/Carmen-Shannon/medusa/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// NewSphere tessellates a UV sphere centered at the origin. Rings run from the +Y pole
// (v = 0) to the -Y pole (v = 1); each ring holds widthSegments+1 vertices so the seam
// carries its own UVs. The pole rings shift their u coordinate by half a segment and the
// degenerate triangles touching the poles are skipped.
//
// Parameters:
//   - radius: the sphere radius
//   - widthSegments: horizontal segments, at least 3
//   - heightSegments: vertical segments, at least 2
//
// Returns:
//   - []model.GPUVertex: (widthSegments+1)*(heightSegments+1) vertices
//   - []uint32: triangle-list indices with counter-clockwise front faces
func NewSphere(radius float32, widthSegments, heightSegments int) ([]model.GPUVertex, []uint32) {
	widthSegments = max(3, widthSegments)
	heightSegments = max(2, heightSegments)

	vertices := make([]model.GPUVertex, 0, (widthSegments+1)*(heightSegments+1))
	grid := make([][]uint32, 0, heightSegments+1)

	for iy := 0; iy <= heightSegments; iy++ {
		v := float32(iy) / float32(heightSegments)

		var uOffset float32
		switch iy {
		case 0:
			uOffset = 0.5 / float32(widthSegments)
		case heightSegments:
			uOffset = -0.5 / float32(widthSegments)
		}

		theta := float64(v) * math.Pi
		sinTheta, cosTheta := math.Sin(theta), math.Cos(theta)

		row := make([]uint32, 0, widthSegments+1)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float32(ix) / float32(widthSegments)
			phi := float64(u) * 2 * math.Pi

			pos := mgl32.Vec3{
				float32(-float64(radius) * math.Cos(phi) * sinTheta),
				float32(float64(radius) * cosTheta),
				float32(float64(radius) * math.Sin(phi) * sinTheta),
			}
			normal := pos
			if pos.Len() > 0 {
				normal = pos.Normalize()
			}

			vertices = append(vertices, model.GPUVertex{
				Position: pos,
				Normal:   normal,
				UV:       [2]float32{u + uOffset, 1 - v},
			})
			row = append(row, uint32(len(vertices)-1))
		}
		grid = append(grid, row)
	}

	indices := make([]uint32, 0, 6*widthSegments*heightSegments-6*widthSegments)
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]

			if iy != 0 {
				indices = append(indices, a, b, d)
			}
			if iy != heightSegments-1 {
				indices = append(indices, b, c, d)
			}
		}
	}

	return vertices, indices
}
