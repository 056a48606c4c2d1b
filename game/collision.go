package game

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

type clipCollideResult struct {
	depenetratingAxis     int
	penetration           float32
	clippedVelocity       mgl32.Vec3
	depenetratingVelocity mgl32.Vec3
}

// BBClipCollide clips the velocity of the moving box against the stationary one. If oneWay is false, a moving
// box that already penetrates the stationary box is pushed out along the axis of least penetration.
func BBClipCollide(stationary, moving cube.BBox, vel mgl32.Vec3, oneWay bool, penetration *float32) mgl32.Vec3 {
	result := doBBClipCollide(stationary, moving, vel)
	if penetration != nil {
		*penetration = result.penetration
	}

	if oneWay {
		return result.clippedVelocity
	}
	return result.depenetratingVelocity
}

func doBBClipCollide(stationary, moving cube.BBox, velocity mgl32.Vec3) (result clipCollideResult) {
	result.clippedVelocity = velocity
	result.depenetratingVelocity = velocity

	if BBHasZeroVolume(stationary) {
		return
	}

	var (
		penetrations       [3]float32
		signedPenetrations [3]float32
		normals            [3]float32
	)
	separatingAxes, separatingAxis := 0, 0
	least := float32(math32.MaxFloat32)

	for i := range 3 {
		lower := moving.Max()[i] - stationary.Min()[i]
		upper := stationary.Max()[i] - moving.Min()[i]
		if math32.Abs(lower) <= 1e-7 {
			lower = 0
		}
		if math32.Abs(upper) <= 1e-7 {
			upper = 0
		}

		switch lowerPositive, upperPositive := math32.Max(0, lower), math32.Max(0, upper); {
		case lowerPositive == 0:
			signedPenetrations[i], normals[i] = lower, -1
			separatingAxes++
			separatingAxis = i
		case upperPositive == 0:
			signedPenetrations[i], normals[i] = upper, 1
			separatingAxes++
			separatingAxis = i
		case lowerPositive < upperPositive:
			penetrations[i], signedPenetrations[i], normals[i] = lowerPositive, lowerPositive, -1
		default:
			penetrations[i], signedPenetrations[i], normals[i] = upperPositive, upperPositive, 1
		}

		if separatingAxes > 1 {
			return
		}
		least = math32.Min(least, penetrations[i])
	}

	// No separating axes means the boxes already overlap.
	if separatingAxes == 0 {
		result.penetration = least
		best := 0
		for i := 1; i < 3; i++ {
			if penetrations[i] < penetrations[best] {
				best = i
			}
		}

		desired := penetrations[best] * normals[best]
		if desired > 0 {
			result.depenetratingVelocity[best] = math32.Max(desired, velocity[best])
		} else {
			result.depenetratingVelocity[best] = math32.Min(desired, velocity[best])
		}
		result.depenetratingAxis = best
		return
	}

	swept := signedPenetrations[separatingAxis] - normals[separatingAxis]*velocity[separatingAxis]
	if swept <= 0 {
		return
	}

	resolved := signedPenetrations[separatingAxis] * normals[separatingAxis]
	result.clippedVelocity[separatingAxis] = resolved
	result.depenetratingVelocity[separatingAxis] = resolved
	return
}

// BBHasZeroVolume returns true if the bounding box has zero volume.
func BBHasZeroVolume(bb cube.BBox) bool {
	return bb.Min() == bb.Max()
}
