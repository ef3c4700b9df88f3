package sorter

// MetadataExtractor decodes capture metadata from the leading bytes of a file.
// Implementations must be safe for concurrent use and must not retain buf.
type MetadataExtractor interface {
	// Extract returns ok=false when buf carries no recognizable metadata or
	// no usable capture timestamp. That is a normal outcome, not an error.
	Extract(buf []byte) (meta CaptureMetadata, ok bool)
}
