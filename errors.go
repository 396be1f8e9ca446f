package gatsby

import "fmt"

// DecodeError reports an unreadable or corrupt source image, discovered
// while probing metadata. It is fatal: the pipeline propagates it
// unmodified and never retries.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("gatsby: decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ResizeError reports a failure of the batch resize collaborator. The
// whole pipeline aborts; no partial descriptor is returned.
type ResizeError struct {
	Path string
	Err  error
}

func (e *ResizeError) Error() string {
	return fmt.Sprintf("gatsby: resize %s: %v", e.Path, e.Err)
}

func (e *ResizeError) Unwrap() error { return e.Err }

// VectorizeError reports a failure of the vectorization collaborator.
// Only reachable when the tracedSVG placeholder was requested.
type VectorizeError struct {
	Path string
	Err  error
}

func (e *VectorizeError) Error() string {
	return fmt.Sprintf("gatsby: trace %s: %v", e.Path, e.Err)
}

func (e *VectorizeError) Unwrap() error { return e.Err }
