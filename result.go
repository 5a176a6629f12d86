package gemcanvas

import "fmt"

// ResultKind discriminates the GenerationResult union.
type ResultKind string

const (
	KindImage ResultKind = "image"
	KindText  ResultKind = "text"
	KindError ResultKind = "error"
)

// ErrorCategory classifies a failed dispatch.
type ErrorCategory string

const (
	// CategoryConfiguration - credential missing; fatal until corrected.
	CategoryConfiguration ErrorCategory = "configuration"

	// CategoryValidation - bad input; no remote call was made.
	CategoryValidation ErrorCategory = "validation"

	// CategoryRateLimited - the client-side limiter refused the call.
	CategoryRateLimited ErrorCategory = "rate_limited"

	// CategoryRemoteService - the service reported a structured failure.
	CategoryRemoteService ErrorCategory = "remote_service"

	// CategoryTransport - network or other unexpected fault during the call.
	CategoryTransport ErrorCategory = "transport"

	// CategoryInternal - local artifact persistence failed after generation.
	CategoryInternal ErrorCategory = "internal"
)

// FallbackText is returned as a TextResult when the model produced neither
// image nor text parts.
const FallbackText = "The model did not return an image or text."

// ImageResult holds a generated image and where it was persisted.
type ImageResult struct {
	// Data contains the raw image bytes
	Data []byte

	// MIMEType of the generated image
	MIMEType string

	// SavedPath is the tracked artifact file on disk
	SavedPath string
}

// TextResult holds a text answer from the model.
type TextResult struct {
	Text string
}

// ErrorResult holds a classified failure. Code and Status are populated only
// for remote service errors.
type ErrorResult struct {
	Category ErrorCategory
	Message  string
	Code     int
	Status   string
}

// GenerationResult is the uniform outcome of a dispatch: exactly one of
// Image, Text or Err is populated, selected by Kind.
type GenerationResult struct {
	Kind  ResultKind
	Image *ImageResult
	Text  *TextResult
	Err   *ErrorResult
}

// OK reports whether the dispatch produced an image or text.
func (r GenerationResult) OK() bool {
	return r.Kind != KindError
}

func imageResult(img *ImageResult) GenerationResult {
	return GenerationResult{Kind: KindImage, Image: img}
}

func textResult(text string) GenerationResult {
	return GenerationResult{Kind: KindText, Text: &TextResult{Text: text}}
}

func errorResult(category ErrorCategory, message string) GenerationResult {
	return GenerationResult{
		Kind: KindError,
		Err:  &ErrorResult{Category: category, Message: message},
	}
}

func serviceErrorResult(svcErr *ServiceError) GenerationResult {
	return GenerationResult{
		Kind: KindError,
		Err: &ErrorResult{
			Category: CategoryRemoteService,
			Message:  fmt.Sprintf("service error %d: %s", svcErr.Code, svcErr.Message),
			Code:     svcErr.Code,
			Status:   svcErr.Status,
		},
	}
}
