package filestorage

import (
	"mime/multipart"
)

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// SaveFile saves an uploaded file under the storage root
	SaveFile(fileHeader *multipart.FileHeader) (string, error)

	// SaveFileWithPath lets you specify a subdirectory for storing the file
	SaveFileWithPath(fileHeader *multipart.FileHeader, path string) (string, error)

	// SaveBytes writes raw file content to a subdirectory and returns its accessible path
	SaveBytes(data []byte, subPath, filename string) (string, error)

	// DeleteFile removes a file from storage
	DeleteFile(filePath string) error

	// GetFullPath returns the full filesystem path for a given file URL
	GetFullPath(fileURL string) string
}
