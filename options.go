package imdraw

// Option configures a Buffer during creation.
// Use functional options to customize capacity for known workloads.
//
// Example:
//
//	// Default empty buffer
//	buf := imdraw.NewBuffer[imdraw.ColorVertex, imdraw.ColorUniform]()
//
//	// Preallocate for a particle-heavy frame
//	buf := imdraw.NewBuffer[imdraw.ColorVertex, imdraw.ColorUniform](
//		imdraw.WithVertexCapacity(4096),
//		imdraw.WithIndexCapacity(6144),
//	)
//
// Options passed to NewPool apply to every buffer the pool creates.
type Option func(*bufferOptions)

// bufferOptions holds optional configuration for Buffer creation.
type bufferOptions struct {
	vertexCapacity  int
	indexCapacity   int
	commandCapacity int
}

// defaultBufferOptions returns the default buffer options.
func defaultBufferOptions() bufferOptions {
	return bufferOptions{}
}

// WithVertexCapacity preallocates space for n vertices.
func WithVertexCapacity(n int) Option {
	return func(o *bufferOptions) {
		o.vertexCapacity = n
	}
}

// WithIndexCapacity preallocates space for n indices.
func WithIndexCapacity(n int) Option {
	return func(o *bufferOptions) {
		o.indexCapacity = n
	}
}

// WithCommandCapacity preallocates space for n draw commands.
func WithCommandCapacity(n int) Option {
	return func(o *bufferOptions) {
		o.commandCapacity = n
	}
}
