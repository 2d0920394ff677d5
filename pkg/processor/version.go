package processor

// Version information for the processor module.
const (
	// Version is the current version of the processor module.
	Version = "1.0.0"

	// MinCompatibleVersion is the minimum version that is compatible with this version.
	MinCompatibleVersion = "1.0.0"
)
