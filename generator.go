package gemcanvas

import "context"

// Generator is the remote generation service binding. Implement this to back
// the dispatcher with a different provider or a test double.
type Generator interface {
	// GenerateContent sends the prompt (and optional source image) to the
	// service and returns the raw content parts of the response.
	GenerateContent(ctx context.Context, prompt string, image *InputImage) (*Response, error)

	// Close releases any resources held by the generator.
	Close() error
}

// Part is one unit of a generation response: inline binary image data or
// text, never both.
type Part struct {
	// Text content, if this is a text part
	Text string

	// Data contains inline image bytes, if this is an image part
	Data []byte

	// MIMEType of the inline data
	MIMEType string
}

// Usage contains token counts for logging and monitoring.
type Usage struct {
	PromptTokens     int
	CandidatesTokens int
	TotalTokens      int
}

// Response is a provider-agnostic generation response.
type Response struct {
	Parts []Part
	Usage *Usage
}
