package gemcanvas

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors
var (
	ErrEmptyPrompt     = errors.New("prompt required")
	ErrEmptyImageData  = errors.New("image data cannot be empty")
	ErrInvalidMIMEType = errors.New("invalid or unsupported MIME type")
	ErrImageTooLarge   = errors.New("image data exceeds maximum size")
)

// MaxImageSize is the maximum allowed source image size in bytes (20MB).
const MaxImageSize = 20 * 1024 * 1024

// ValidMIMETypes contains the supported source image MIME types.
var ValidMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// InputImage is a source image attached to a request.
type InputImage struct {
	// Data is the raw image bytes
	Data []byte

	// MIMEType of the image (e.g., "image/jpeg", "image/png")
	MIMEType string
}

// Request is a single generation request. A nil SourceImage selects pure
// text-to-image generation; a present one selects editing/analysis. The
// request is built fresh per submission and not retained.
type Request struct {
	// Prompt is the user's instruction; must be non-empty after trimming.
	Prompt string

	// SourceImage is an optional image to edit or analyze.
	SourceImage *InputImage
}

// ValidatePrompt validates a text prompt. Whitespace-only prompts are empty.
func ValidatePrompt(prompt string) error {
	if strings.TrimSpace(prompt) == "" {
		return ErrEmptyPrompt
	}
	return nil
}

// ValidateInputImage validates a source image.
func ValidateInputImage(img *InputImage) error {
	if img == nil {
		return nil
	}

	if len(img.Data) == 0 {
		return ErrEmptyImageData
	}

	if len(img.Data) > MaxImageSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrImageTooLarge, len(img.Data), MaxImageSize)
	}

	if img.MIMEType == "" {
		return fmt.Errorf("%w: MIME type is required", ErrInvalidMIMEType)
	}

	if !ValidMIMETypes[img.MIMEType] {
		return fmt.Errorf("%w: %s", ErrInvalidMIMEType, img.MIMEType)
	}

	return nil
}

// Validate checks the whole request.
func (r Request) Validate() error {
	if err := ValidatePrompt(r.Prompt); err != nil {
		return err
	}
	return ValidateInputImage(r.SourceImage)
}
