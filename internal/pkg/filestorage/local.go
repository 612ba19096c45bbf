package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/edusync/edusync/internal/pkg/logger"
)

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string // The root directory where files will be stored
	baseURL  string // The base URL to access the stored files (optional, for generating full URLs)
}

// NewLocalStorage creates a new LocalStorage instance.
// basePath is the required directory path on the server.
// baseURL is optional; if provided, it will be prepended to returned file paths.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  baseURL,
	}, nil
}

// SaveBytes writes raw file content into a subdirectory under the storage
// root. The stored name is kept as given, so callers are responsible for
// making it unique.
func (ls *LocalStorage) SaveBytes(data []byte, subPath, filename string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty file content")
	}
	if filename == "" {
		filename = uuid.New().String()
	}

	fullDirPath := ls.basePath
	if subPath != "" {
		fullDirPath = filepath.Join(ls.basePath, subPath)
		if err := os.MkdirAll(fullDirPath, os.ModePerm); err != nil {
			logger.Error().Err(err).Str("path", fullDirPath).Msg("Failed to create subdirectory")
			return "", fmt.Errorf("failed to create subdirectory: %w", err)
		}
	}

	dstPath := filepath.Join(fullDirPath, filename)
	if err := os.WriteFile(dstPath, data, 0o644); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to write file content")
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	accessiblePath := ls.accessiblePath(subPath, filename)
	logger.Info().Str("saved_as", filename).Str("accessible_path", accessiblePath).Msg("File saved successfully")
	return accessiblePath, nil
}

// SaveFileWithPath saves an uploaded file to a specified subdirectory
func (ls *LocalStorage) SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	if fileHeader == nil {
		return "", nil // No file uploaded
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to read uploaded file")
		return "", fmt.Errorf("failed to read uploaded file: %w", err)
	}

	// Unique name to prevent collisions
	uniqueFilename := uuid.New().String() + filepath.Ext(fileHeader.Filename)

	return ls.SaveBytes(content, subPath, uniqueFilename)
}

// SaveFile saves an uploaded file using the default path
func (ls *LocalStorage) SaveFile(fileHeader *multipart.FileHeader) (string, error) {
	return ls.SaveFileWithPath(fileHeader, "")
}

// DeleteFile removes a file from the storage filesystem.
// It accepts the accessible path as stored in the database
// (e.g. uploads/avatars/filename.jpg). Deleting a missing file is not
// an error.
func (ls *LocalStorage) DeleteFile(filePath string) error {
	if filePath == "" {
		return nil // Nothing to delete
	}

	physicalPath := ls.GetFullPath(filePath)
	if physicalPath == "" {
		return fmt.Errorf("invalid file path: %s", filePath)
	}

	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted successfully")
	return nil
}

// GetFullPath returns the full filesystem path for a given accessible path
// or URL. Path traversal segments are rejected.
func (ls *LocalStorage) GetFullPath(fileURL string) string {
	rel := fileURL

	// Strip the base URL when the stored value is a full URL
	if ls.baseURL != "" && strings.HasPrefix(rel, ls.baseURL) {
		rel = strings.TrimPrefix(rel, ls.baseURL)
	}
	rel = strings.TrimPrefix(rel, "/")
	rel = strings.TrimPrefix(rel, "uploads/")

	rel = filepath.Clean(rel)
	if rel == "" || rel == "." || strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return ""
	}

	return filepath.Join(ls.basePath, rel)
}

func (ls *LocalStorage) accessiblePath(subPath, filename string) string {
	if ls.baseURL != "" {
		base := strings.TrimRight(ls.baseURL, "/")
		if subPath != "" {
			return base + "/" + subPath + "/" + filename
		}
		return base + "/" + filename
	}

	if subPath != "" {
		return filepath.Join("uploads", subPath, filename)
	}
	return filepath.Join("uploads", filename)
}
