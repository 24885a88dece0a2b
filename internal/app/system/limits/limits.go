// internal/app/system/limits/limits.go
package limits

// Upload size limits for file attachments.
// These limits help prevent memory and disk exhaustion from oversized requests.
const (
	// MaxUploadSize is the maximum size of a single uploaded file.
	MaxUploadSize = 10 << 20 // 10 MB

	// MaxUploadMemory is how much of a multipart body is held in memory
	// before spilling to a temp file during parsing.
	MaxUploadMemory = 4 << 20 // 4 MB
)
