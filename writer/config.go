package writer

import (
	"github.com/GianlucaZoni/GaussianSplats3D/format"
	"github.com/GianlucaZoni/GaussianSplats3D/internal/options"
	"github.com/GianlucaZoni/GaussianSplats3D/splat"
)

// DefaultBlockSize is the default bucket-builder grid cell size, in world
// units.
const DefaultBlockSize float32 = 5.0

// DefaultBucketSize is the default maximum number of splats per bucket.
const DefaultBucketSize uint32 = 256

// Config holds the writer's configuration, built up via functional Options.
type Config struct {
	CompressionLevel format.CompressionLevel
	SceneCenter      splat.Vec3
	MinimumAlpha     uint8
	BlockSize        float32
	BucketSize       uint32
	// MaxSectionCount optionally pre-provisions the section-header table
	// larger than the number of arrays passed to Write, to support a
	// grow-in-place producer. Zero means "exactly len(arrays)".
	MaxSectionCount uint32
}

// NewConfig returns a Config with the format's default parameters.
func NewConfig() *Config {
	return &Config{
		CompressionLevel: format.LevelFull,
		BlockSize:        DefaultBlockSize,
		BucketSize:       DefaultBucketSize,
	}
}

// Option configures a Writer's Config.
type Option = options.Option[*Config]

// WithCompressionLevel sets the compression level for the whole buffer.
func WithCompressionLevel(level format.CompressionLevel) Option {
	return options.NoError(func(c *Config) { c.CompressionLevel = level })
}

// WithSceneCenter sets the scene center recorded in the file header.
func WithSceneCenter(center splat.Vec3) Option {
	return options.NoError(func(c *Config) { c.SceneCenter = center })
}

// WithMinimumAlpha sets the opacity filter threshold; splats with effective
// opacity below this value are dropped during Write.
func WithMinimumAlpha(minimumAlpha uint8) Option {
	return options.NoError(func(c *Config) { c.MinimumAlpha = minimumAlpha })
}

// WithBlockSize sets the default bucket-builder grid cell size, in world
// units.
func WithBlockSize(blockSize float32) Option {
	return options.NoError(func(c *Config) { c.BlockSize = blockSize })
}

// WithBucketSize sets the default maximum number of splats per bucket.
func WithBucketSize(bucketSize uint32) Option {
	return options.NoError(func(c *Config) { c.BucketSize = bucketSize })
}

// WithMaxSectionCount pre-provisions the section-header table for future
// growth beyond the arrays passed to the next Write call.
func WithMaxSectionCount(n uint32) Option {
	return options.NoError(func(c *Config) { c.MaxSectionCount = n })
}
