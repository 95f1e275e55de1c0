package pdf

import (
	"fmt"

	"github.com/nicolelu/esign/internal/content"
	"github.com/nicolelu/esign/internal/pdf/security"
)

// Service handles PDF file operations for the detection pipeline: path
// security checks, file validation, and loading documents into the content
// model.
type Service struct {
	maxFileSize   int64
	validator     *Validator
	loader        *DocumentLoader
	pathValidator *security.PathValidator
}

// NewService creates a new PDF service rooted at the configured directory
func NewService(maxFileSize int64, configuredDirectory string) (*Service, error) {
	pathValidator, err := security.NewPathValidator(configuredDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to create path validator: %w", err)
	}

	return &Service{
		maxFileSize:   maxFileSize,
		validator:     NewValidator(maxFileSize),
		loader:        NewDocumentLoader(),
		pathValidator: pathValidator,
	}, nil
}

// LoadDocument validates the path and materializes the PDF into the content
// model consumed by detection
func (s *Service) LoadDocument(path string) (*content.Document, error) {
	if err := s.pathValidator.ValidatePath(path); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	if err := s.validator.validatePDFFile(path); err != nil {
		return nil, err
	}
	return s.loader.LoadDocument(path)
}

// PDFValidateFile performs validation on a PDF file
func (s *Service) PDFValidateFile(req PDFValidateFileRequest) (*PDFValidateFileResult, error) {
	if err := s.pathValidator.ValidatePath(req.Path); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	return s.validator.ValidateFile(req)
}

// GetMaxFileSize returns the maximum file size limit
func (s *Service) GetMaxFileSize() int64 {
	return s.maxFileSize
}

// GetConfiguredDirectory returns the directory the service is rooted at
func (s *Service) GetConfiguredDirectory() string {
	return s.pathValidator.GetConfiguredDirectory()
}

// IsValidPDF performs a quick validation check on a file
func (s *Service) IsValidPDF(filePath string) bool {
	return s.validator.IsValidPDF(filePath)
}
