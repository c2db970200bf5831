package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxResumeSize caps resume uploads at 5MB
const MaxResumeSize = 5 * 1024 * 1024

// AllowedResumeTypes defines the allowed resume file extensions
var AllowedResumeTypes = map[string]bool{
	".pdf": true,
}

// ValidateResumeFile checks if the uploaded file is an acceptable resume
func ValidateResumeFile(file *multipart.FileHeader) error {
	if file.Size > MaxResumeSize {
		return BadRequestError("File size exceeds 5MB limit", nil)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !AllowedResumeTypes[ext] {
		return BadRequestError("Invalid file type. Allowed types: pdf", nil)
	}

	return nil
}

// SaveResumeFile saves an uploaded resume to the uploads directory and
// returns the stored path and the SHA-256 hex of the content.
func SaveResumeFile(file *multipart.FileHeader, uploadDir string) (string, string, error) {
	if err := ValidateResumeFile(file); err != nil {
		return "", "", err
	}

	ext := filepath.Ext(file.Filename)
	filename := uuid.New().String() + ext
	storagePath := filepath.Join(uploadDir, filename)

	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return "", "", fmt.Errorf("failed to create uploads directory: %v", err)
	}

	src, err := file.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open uploaded file: %v", err)
	}
	defer src.Close()

	dst, err := os.Create(storagePath)
	if err != nil {
		return "", "", fmt.Errorf("failed to create file: %v", err)
	}
	defer dst.Close()

	hasher := sha256.New()
	if _, err := io.Copy(io.MultiWriter(dst, hasher), src); err != nil {
		return "", "", fmt.Errorf("failed to save file: %v", err)
	}

	return storagePath, hex.EncodeToString(hasher.Sum(nil)), nil
}
