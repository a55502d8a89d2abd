package report

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PageCount returns the number of pages in a rendered PDF. Verification
// steps use it to confirm a report actually produced pages.
func PageCount(data []byte) (int, error) {
	count, err := api.PageCount(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return 0, fmt.Errorf("failed to count PDF pages: %w", err)
	}
	return count, nil
}

// ValidatePDF checks that the bytes form a structurally valid PDF document.
func ValidatePDF(data []byte) error {
	if err := api.Validate(bytes.NewReader(data), model.NewDefaultConfiguration()); err != nil {
		return fmt.Errorf("PDF validation failed: %w", err)
	}
	return nil
}
