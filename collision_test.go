package talon

import (
	"testing"

	"github.com/akmonengine/talon/actor"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"
)

func sphereBody(position mgl64.Vec3, radius float64) *actor.RigidBody {
	return actor.NewRigidBody(
		actor.NewTransformAt(position, mgl64.QuatIdent()),
		&actor.Sphere{Radius: radius},
		actor.Material{Restitution: 0.3, Friction: 0.6},
	)
}

func boxBody(position mgl64.Vec3, halfExtents mgl64.Vec3) *actor.RigidBody {
	return actor.NewRigidBody(
		actor.NewTransformAt(position, mgl64.QuatIdent()),
		&actor.Box{HalfExtents: halfExtents},
		actor.Material{Restitution: 0.3, Friction: 0.6},
	)
}

func TestDetectorScenarios(t *testing.T) {
	detector := NewDetector(DefaultConfig())

	t.Run("separated unit spheres produce no contact", func(t *testing.T) {
		a := sphereBody(mgl64.Vec3{0, 0, 0}, 1)
		b := sphereBody(mgl64.Vec3{2.5, 0, 0}, 1)

		require.Nil(t, detector.TestCollision(a, b))
	})

	t.Run("near-touching boxes produce a shallow contact", func(t *testing.T) {
		a := boxBody(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0.5, 0.5, 0.5})
		b := boxBody(mgl64.Vec3{1.01, 0.2, 0.1}, mgl64.Vec3{0.5, 0.5, 0.5})

		details := detector.TestCollision(a, b)
		require.NotNil(t, details)

		// 0.01 of face separation inside a 0.03 skin
		require.InDelta(t, 0.02, details.Depth, 1e-9)
		require.InDelta(t, 1, details.Normal.X(), 1e-9)
		require.InDelta(t, 0, details.Normal.Y(), 1e-9)
		require.InDelta(t, 0, details.Normal.Z(), 1e-9)

		// Contact point sits between the two faces, local points on each body
		require.InDelta(t, 0.49, details.Point.X(), 1e-9)
		require.InDelta(t, 0.5, details.PointInA.X(), 1e-9)
		require.InDelta(t, -0.53, details.PointInB.X(), 1e-9)

		require.InDelta(t, 0.3, details.Restitution, 1e-12)
		require.InDelta(t, 0.6, details.Friction, 1e-12)
	})

	t.Run("overlapping spheres produce depth and normal", func(t *testing.T) {
		offset := mgl64.Vec3{1.5, 0.1, 0.05}
		a := sphereBody(mgl64.Vec3{0, 0, 0}, 1)
		b := sphereBody(offset, 1)

		details := detector.TestCollision(a, b)
		require.NotNil(t, details)

		expectedDepth := 2 - offset.Len() + DefaultConfig().Margin
		require.InDelta(t, expectedDepth, details.Depth, 0.05)
		require.Greater(t, details.Normal.Dot(offset.Normalize()), 0.99)
	})

	t.Run("overlapping boxes resolve along the nearest face", func(t *testing.T) {
		a := boxBody(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0.5, 0.5, 0.5})
		b := boxBody(mgl64.Vec3{0.6, 0.04, 0.02}, mgl64.Vec3{0.5, 0.5, 0.5})

		details := detector.TestCollision(a, b)
		require.NotNil(t, details)

		require.Greater(t, details.Normal.X(), 0.95)
		require.InDelta(t, 0.43, details.Depth, 0.03)
	})

	t.Run("box and small sphere out of reach produce no contact", func(t *testing.T) {
		a := boxBody(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0.5, 0.5, 0.5})
		b := sphereBody(mgl64.Vec3{0, 1.2, 0}, 0.5)

		require.Nil(t, detector.TestCollision(a, b))
	})

	t.Run("coincident spheres fall back to a finite normal", func(t *testing.T) {
		a := sphereBody(mgl64.Vec3{0, 0, 0}, 1)
		b := sphereBody(mgl64.Vec3{0, 0, 0}, 1)

		details := detector.TestCollision(a, b)
		require.NotNil(t, details)
		require.InDelta(t, 1, details.Normal.Len(), 1e-9)
		require.Greater(t, details.Depth, 0.0)
	})
}

func TestDetectorProperties(t *testing.T) {
	detector := NewDetector(DefaultConfig())

	t.Run("swapped bodies report an opposite normal", func(t *testing.T) {
		offset := mgl64.Vec3{1.5, 0.1, 0.05}
		a := sphereBody(mgl64.Vec3{0, 0, 0}, 1)
		b := sphereBody(offset, 1)

		ab := detector.TestCollision(a, b)
		ba := detector.TestCollision(b, a)
		require.NotNil(t, ab)
		require.NotNil(t, ba)

		require.Less(t, ab.Normal.Dot(ba.Normal), -0.95)
		require.InDelta(t, ab.Depth, ba.Depth, 0.05)
	})

	t.Run("translating both bodies shifts only the contact point", func(t *testing.T) {
		shift := mgl64.Vec3{4, -2, 8}
		a1 := boxBody(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0.5, 0.5, 0.5})
		b1 := boxBody(mgl64.Vec3{1.01, 0.2, 0.1}, mgl64.Vec3{0.5, 0.5, 0.5})
		a2 := boxBody(shift, mgl64.Vec3{0.5, 0.5, 0.5})
		b2 := boxBody(mgl64.Vec3{1.01, 0.2, 0.1}.Add(shift), mgl64.Vec3{0.5, 0.5, 0.5})

		first := detector.TestCollision(a1, b1)
		second := detector.TestCollision(a2, b2)
		require.NotNil(t, first)
		require.NotNil(t, second)

		require.InDelta(t, first.Depth, second.Depth, 1e-9)
		moved := first.Point.Add(shift)
		require.InDelta(t, moved.X(), second.Point.X(), 1e-9)
		require.InDelta(t, moved.Y(), second.Point.Y(), 1e-9)
		require.InDelta(t, moved.Z(), second.Point.Z(), 1e-9)
	})

	t.Run("unchanged inputs give identical results", func(t *testing.T) {
		a := boxBody(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0.5, 0.5, 0.5})
		b := boxBody(mgl64.Vec3{0.6, 0.04, 0.02}, mgl64.Vec3{0.5, 0.5, 0.5})

		first := detector.TestCollision(a, b)
		second := detector.TestCollision(a, b)
		require.Equal(t, first, second)
	})

	t.Run("spheres beyond the margin never touch", func(t *testing.T) {
		directions := []mgl64.Vec3{
			{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {1, 1, 1}, {-1, 2, 0.5},
		}
		for _, direction := range directions {
			center := direction.Normalize().Mul(2.2)
			a := sphereBody(mgl64.Vec3{0, 0, 0}, 1)
			b := sphereBody(center, 1)

			require.Nil(t, detector.TestCollision(a, b), "direction %v", direction)
		}
	})

	t.Run("shallow band depth tracks the remaining gap", func(t *testing.T) {
		for _, gap := range []float64{0.005, 0.015, 0.025} {
			a := boxBody(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0.5, 0.5, 0.5})
			b := boxBody(mgl64.Vec3{1 + gap, 0.2, 0.1}, mgl64.Vec3{0.5, 0.5, 0.5})

			details := detector.TestCollision(a, b)
			require.NotNil(t, details, "gap %v", gap)
			require.InDelta(t, DefaultConfig().Margin-gap, details.Depth, 1e-9, "gap %v", gap)
		}
	})
}

func TestBroadPhase(t *testing.T) {
	bodies := []*actor.RigidBody{
		sphereBody(mgl64.Vec3{0, 0, 0}, 1),
		sphereBody(mgl64.Vec3{1.5, 0, 0}, 1),
		sphereBody(mgl64.Vec3{50, 0, 0}, 1),
	}

	pairs := BroadPhase(bodies)
	require.Len(t, pairs, 1)
	require.Equal(t, bodies[0], pairs[0].BodyA)
	require.Equal(t, bodies[1], pairs[0].BodyB)
}

func TestSpatialGridMatchesBruteForce(t *testing.T) {
	bodies := []*actor.RigidBody{
		sphereBody(mgl64.Vec3{0, 0, 0}, 1),
		sphereBody(mgl64.Vec3{1.5, 0.1, 0}, 1),
		boxBody(mgl64.Vec3{10, 0, 0}, mgl64.Vec3{0.5, 0.5, 0.5}),
		boxBody(mgl64.Vec3{10.6, 0.04, 0.02}, mgl64.Vec3{0.5, 0.5, 0.5}),
		sphereBody(mgl64.Vec3{-20, 5, 3}, 1),
	}

	grid := NewSpatialGrid(4, 256)
	for i, body := range bodies {
		grid.Insert(i, body)
	}
	grid.SortCells()

	gridPairs := grid.FindPairs(bodies)
	brutePairs := BroadPhase(bodies)

	require.Len(t, gridPairs, len(brutePairs))

	key := func(p CollisionPair) [2]*actor.RigidBody { return [2]*actor.RigidBody{p.BodyA, p.BodyB} }
	seen := map[[2]*actor.RigidBody]bool{}
	for _, pair := range gridPairs {
		seen[key(pair)] = true
	}
	for _, pair := range brutePairs {
		require.True(t, seen[key(pair)], "missing pair %v", key(pair))
	}
}

func TestNarrowPhase(t *testing.T) {
	detector := NewDetector(DefaultConfig())
	bodies := []*actor.RigidBody{
		sphereBody(mgl64.Vec3{0, 0, 0}, 1),
		sphereBody(mgl64.Vec3{1.5, 0.1, 0.05}, 1),
		boxBody(mgl64.Vec3{10, 0, 0}, mgl64.Vec3{0.5, 0.5, 0.5}),
		boxBody(mgl64.Vec3{10.6, 0.04, 0.02}, mgl64.Vec3{0.5, 0.5, 0.5}),
		sphereBody(mgl64.Vec3{50, 0, 0}, 1),
	}

	pairs := BroadPhase(bodies)

	t.Run("contacts come back for every overlapping pair", func(t *testing.T) {
		contacts := NarrowPhase(detector, pairs, 1)
		require.Len(t, contacts, 2)
	})

	t.Run("worker count does not change the result", func(t *testing.T) {
		sequential := NarrowPhase(detector, pairs, 1)
		parallel := NarrowPhase(detector, pairs, 4)

		require.Equal(t, sequential, parallel)
	})

	t.Run("empty pair list is fine", func(t *testing.T) {
		require.Empty(t, NarrowPhase(detector, nil, 4))
	})
}
