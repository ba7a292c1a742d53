package config

const (
	// MaxFolderNameLength is the maximum length for folder names.
	// Limited to 255 to fit in VARCHAR(255).
	MaxFolderNameLength = 255

	// MaxTagNameLength is the maximum length for a single tag.
	MaxTagNameLength = 100

	// MaxFilenameLength is the maximum length for a PDF display filename.
	MaxFilenameLength = 255

	// UploadChunkSize is the copy buffer for uploads. Resident memory per upload
	// is bounded by this regardless of file size.
	UploadChunkSize = 1 << 20

	// DefaultMaxUploadMB caps a single upload body.
	DefaultMaxUploadMB = 200

	// MultipartMemoryBytes is how much of a multipart form is held in memory
	// before the rest spills to temp files.
	MultipartMemoryBytes = 8 << 20

	// DefaultMaxTags is the number of tags returned by extraction when the caller
	// does not ask for a specific count.
	DefaultMaxTags = 5

	// MaxTagsLimit caps the max_tags a caller may request.
	MaxTagsLimit = 20

	// MinExtractionTextLength is the number of non-whitespace characters text must
	// have before frequency extraction is preferred over the filename.
	MinExtractionTextLength = 50

	// MaxBulkIDs caps the ids accepted by one bulk move or delete.
	MaxBulkIDs = 1000
)
