package web

import (
	"net/http"
	"path/filepath"

	"github.com/jfickel/gemcanvas"
)

// View is the JSON shape the page renders from. Exactly one of the image
// fields, Text, or Error is populated, mirroring the result union.
type View struct {
	Kind         string     `json:"kind"`
	ImageURL     string     `json:"image_url,omitempty"`
	DownloadName string     `json:"download_name,omitempty"`
	Text         string     `json:"text,omitempty"`
	Error        *ErrorView `json:"error,omitempty"`
}

// ErrorView surfaces a classified failure to the page.
type ErrorView struct {
	Category string `json:"category"`
	Code     int    `json:"code,omitempty"`
	Message  string `json:"message"`
}

// ViewFromResult is the pure mapping from a dispatch result to what the page
// shows: image pane plus download link, text pane, or error message with
// both panes cleared.
func ViewFromResult(result gemcanvas.GenerationResult) View {
	switch result.Kind {
	case gemcanvas.KindImage:
		name := filepath.Base(result.Image.SavedPath)
		return View{
			Kind:         string(result.Kind),
			ImageURL:     "/artifacts/" + name,
			DownloadName: name,
		}
	case gemcanvas.KindText:
		return View{
			Kind: string(result.Kind),
			Text: result.Text.Text,
		}
	default:
		return View{
			Kind: string(result.Kind),
			Error: &ErrorView{
				Category: string(result.Err.Category),
				Code:     result.Err.Code,
				Message:  result.Err.Message,
			},
		}
	}
}

// statusForResult picks the HTTP status for a dispatch outcome.
func statusForResult(result gemcanvas.GenerationResult) int {
	if result.OK() {
		return http.StatusOK
	}

	switch result.Err.Category {
	case gemcanvas.CategoryValidation:
		return http.StatusBadRequest
	case gemcanvas.CategoryRateLimited:
		return http.StatusTooManyRequests
	case gemcanvas.CategoryRemoteService, gemcanvas.CategoryTransport:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
