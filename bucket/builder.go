// Package bucket partitions an uncompressed splat list into fixed-size
// spatial buckets on a uniform 3D grid.
package bucket

import (
	"math"

	"github.com/GianlucaZoni/GaussianSplats3D/splat"
)

// Bucket is a group of up to bucketSize splats sharing one grid cell.
type Bucket struct {
	// Splats holds the local indices (into the input slice) of the splats
	// assigned to this bucket, in insertion order.
	Splats []int
	// Center is the bucket's world-space center (the grid cell's midpoint).
	Center splat.Vec3
}

// Result is the output of Build: the full buckets (each exactly bucketSize
// long) followed, in the final section layout, by the partially-filled
// buckets.
type Result struct {
	FullBuckets          []Bucket
	PartiallyFullBuckets []Bucket
}

// All concatenates FullBuckets and PartiallyFullBuckets in the order the
// writer lays them out on disk (full, then partial).
func (r Result) All() []Bucket {
	out := make([]Bucket, 0, len(r.FullBuckets)+len(r.PartiallyFullBuckets))
	out = append(out, r.FullBuckets...)
	out = append(out, r.PartiallyFullBuckets...)
	return out
}

// slot is the mutable working state for one grid cell while buckets are
// being filled; it is reset (but not removed from the key->slot map) each
// time it reaches bucketSize, so a new bucket is created under the same key.
type slot struct {
	splats []int
	order  int // insertion order of this slot's current incarnation
}

// Build partitions centers (indexed by local splat index 0..len(centers)-1)
// into buckets of at most bucketSize splats on a uniform grid of cell size
// blockSize world units.
func Build(centers []splat.Vec3, blockSize float32, bucketSize int) Result {
	if len(centers) == 0 {
		return Result{}
	}

	min, _ := boundingBox(centers)
	dim := boundingBoxDim(centers)

	yBlocks := int(math.Ceil(float64(dim.Y / blockSize)))
	zBlocks := int(math.Ceil(float64(dim.Z / blockSize)))
	if yBlocks < 1 {
		yBlocks = 1
	}
	if zBlocks < 1 {
		zBlocks = 1
	}

	slots := make(map[int64]*slot)
	full := make([]Bucket, 0)
	// keyOrder records the first-seen order of each key, so that partial
	// buckets at the end are emitted in insertion order of their keys.
	keyOrder := make([]int64, 0)
	seenKey := make(map[int64]bool)
	keyCenter := make(map[int64]splat.Vec3)

	nextOrder := 0

	for i, c := range centers {
		xBlock := int(math.Floor(float64((c.X - min.X) / blockSize)))
		yBlock := int(math.Floor(float64((c.Y - min.Y) / blockSize)))
		zBlock := int(math.Floor(float64((c.Z - min.Z) / blockSize)))

		key := int64(xBlock)*int64(yBlocks)*int64(zBlocks) + int64(yBlock)*int64(zBlocks) + int64(zBlock)

		if !seenKey[key] {
			seenKey[key] = true
			keyOrder = append(keyOrder, key)
			keyCenter[key] = bucketCenter(xBlock, yBlock, zBlock, blockSize, min)
		}

		s, ok := slots[key]
		if !ok {
			s = &slot{}
			slots[key] = s
		}

		s.splats = append(s.splats, i)

		if len(s.splats) == bucketSize {
			center := bucketCenter(xBlock, yBlock, zBlock, blockSize, min)
			full = append(full, Bucket{Splats: s.splats, Center: center})
			// Reset the slot so further inserts under this key start a new
			// bucket.
			slots[key] = &slot{order: nextOrder}
			nextOrder++
		}
	}

	// Remaining non-empty slots become partially-filled buckets, emitted in
	// insertion order of their keys. A key may have been reset to a fresh
	// (empty) slot after filling one or more full buckets; only slots with
	// remaining splats are emitted.
	partial := make([]Bucket, 0)
	for _, key := range keyOrder {
		s := slots[key]
		if s == nil || len(s.splats) == 0 {
			continue
		}

		// The center is that of the grid cell the key was first seen for.
		partial = append(partial, Bucket{Splats: s.splats, Center: keyCenter[key]})
	}

	return Result{FullBuckets: full, PartiallyFullBuckets: partial}
}

// bucketCenter computes the world-space center of grid cell (x,y,z):
// xBlock*blockSize + min + blockSize/2 per axis.
func bucketCenter(xBlock, yBlock, zBlock int, blockSize float32, min splat.Vec3) splat.Vec3 {
	half := blockSize / 2
	return splat.Vec3{
		X: float32(xBlock)*blockSize + min.X + half,
		Y: float32(yBlock)*blockSize + min.Y + half,
		Z: float32(zBlock)*blockSize + min.Z + half,
	}
}

// boundingBox returns the axis-aligned min and max corners over centers.
func boundingBox(centers []splat.Vec3) (min, max splat.Vec3) {
	min, max = centers[0], centers[0]
	for _, c := range centers[1:] {
		if c.X < min.X {
			min.X = c.X
		}
		if c.Y < min.Y {
			min.Y = c.Y
		}
		if c.Z < min.Z {
			min.Z = c.Z
		}
		if c.X > max.X {
			max.X = c.X
		}
		if c.Y > max.Y {
			max.Y = c.Y
		}
		if c.Z > max.Z {
			max.Z = c.Z
		}
	}
	return min, max
}

// boundingBoxDim returns max-min, the bounding box's extent per axis.
func boundingBoxDim(centers []splat.Vec3) splat.Vec3 {
	min, max := boundingBox(centers)
	return max.Sub(min)
}
