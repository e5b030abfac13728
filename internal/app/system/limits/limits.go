// internal/app/system/limits/limits.go
package limits

// Request body size limits for various features.
// These limits help prevent memory exhaustion from oversized requests.
const (
	// MaxJSONBody is the maximum size of a JSON request body.
	MaxJSONBody = 1 << 20 // 1 MB

	// MaxUploadFile is the maximum size of one uploaded file.
	MaxUploadFile = 10 << 20 // 10 MB

	// MaxUploadFiles is the maximum number of files in one upload request.
	MaxUploadFiles = 10

	// MaxUploadRequest bounds a whole multipart upload: every file at its
	// cap plus room for the form fields.
	MaxUploadRequest = MaxUploadFiles*MaxUploadFile + 1<<20

	// MaxUploadMemory is how much of a multipart body is held in memory;
	// the rest spills to temp files.
	MaxUploadMemory = 32 << 20
)
