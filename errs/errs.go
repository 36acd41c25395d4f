// Package errs defines the sentinel errors returned by the gsplat packages.
//
// Callers should compare against these values with errors.Is, since call
// sites wrap them with additional context via fmt.Errorf("%w: ...", ...).
package errs

import "errors"

var (
	// ErrUnsupportedVersion is returned when a buffer's header major version
	// exceeds the version this package knows how to parse.
	ErrUnsupportedVersion = errors.New("gsplat: unsupported header version")

	// ErrInvalidCompressionLevel is returned when a compression level outside
	// {0, 1} is encountered during parsing or configuration.
	ErrInvalidCompressionLevel = errors.New("gsplat: invalid compression level")

	// ErrInvalidSHDegree is returned when an SH degree outside {0, 1, 2} is
	// encountered during parsing or configuration.
	ErrInvalidSHDegree = errors.New("gsplat: invalid SH degree")

	// ErrMixedSHDegree is returned by the writer when input arrays disagree
	// on SH degree; the first array's degree is canonical for the buffer.
	ErrMixedSHDegree = errors.New("gsplat: mixed SH degree across sections")

	// ErrBufferTruncated is returned when section offsets computed from
	// headers exceed the buffer's actual length.
	ErrBufferTruncated = errors.New("gsplat: buffer truncated or undersized")

	// ErrInvalidHeaderSize is returned when a byte slice handed to a header
	// Parse method is not exactly the expected fixed size.
	ErrInvalidHeaderSize = errors.New("gsplat: invalid header size")

	// ErrSectionCountExceeded is returned when the writer is asked to emit
	// more sections than the buffer's maxSectionCount allows.
	ErrSectionCountExceeded = errors.New("gsplat: section count exceeded")

	// ErrSplatCountExceeded is returned when a section is asked to hold more
	// splats than its maxSplatCount.
	ErrSplatCountExceeded = errors.New("gsplat: splat count exceeded")

	// ErrNoSplatsWritten is returned by the writer when Write is called
	// without any input arrays having contributed a surviving splat.
	ErrNoSplatsWritten = errors.New("gsplat: no splats written")

	// ErrSectionIndexOutOfRange is returned when a section index passed to a
	// reader accessor is outside [0, sectionCount).
	ErrSectionIndexOutOfRange = errors.New("gsplat: section index out of range")
)
