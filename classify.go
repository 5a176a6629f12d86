package gemcanvas

import "strings"

// Classify reduces a response to its user-facing content.
//
// Priority order: the first part carrying inline image data wins, and any
// co-present text parts are discarded. If no part carries image data, the
// first non-empty text part is the answer. If neither is present, a
// TextResult with FallbackText is returned. Classify never produces an
// error result.
func Classify(resp *Response) GenerationResult {
	if resp != nil {
		for _, part := range resp.Parts {
			if len(part.Data) > 0 {
				return imageResult(&ImageResult{
					Data:     part.Data,
					MIMEType: part.MIMEType,
				})
			}
		}

		for _, part := range resp.Parts {
			if strings.TrimSpace(part.Text) != "" {
				return textResult(part.Text)
			}
		}
	}

	return textResult(FallbackText)
}
