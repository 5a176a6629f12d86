package web

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jfickel/gemcanvas"
)

func TestViewFromResult(t *testing.T) {
	tests := []struct {
		name       string
		result     gemcanvas.GenerationResult
		want       View
		wantStatus int
	}{
		{
			name: "image result",
			result: gemcanvas.GenerationResult{
				Kind:  gemcanvas.KindImage,
				Image: &gemcanvas.ImageResult{SavedPath: "/tmp/gemcanvas/gen_abc.png"},
			},
			want: View{
				Kind:         "image",
				ImageURL:     "/artifacts/gen_abc.png",
				DownloadName: "gen_abc.png",
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "text result",
			result: gemcanvas.GenerationResult{
				Kind: gemcanvas.KindText,
				Text: &gemcanvas.TextResult{Text: "A red balloon in the sky."},
			},
			want:       View{Kind: "text", Text: "A red balloon in the sky."},
			wantStatus: http.StatusOK,
		},
		{
			name: "validation error",
			result: gemcanvas.GenerationResult{
				Kind: gemcanvas.KindError,
				Err:  &gemcanvas.ErrorResult{Category: gemcanvas.CategoryValidation, Message: "prompt required"},
			},
			want: View{
				Kind:  "error",
				Error: &ErrorView{Category: "validation", Message: "prompt required"},
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "remote service error keeps code",
			result: gemcanvas.GenerationResult{
				Kind: gemcanvas.KindError,
				Err: &gemcanvas.ErrorResult{
					Category: gemcanvas.CategoryRemoteService,
					Message:  "service error 429: rate limited",
					Code:     429,
				},
			},
			want: View{
				Kind:  "error",
				Error: &ErrorView{Category: "remote_service", Code: 429, Message: "service error 429: rate limited"},
			},
			wantStatus: http.StatusBadGateway,
		},
		{
			name: "rate limited",
			result: gemcanvas.GenerationResult{
				Kind: gemcanvas.KindError,
				Err:  &gemcanvas.ErrorResult{Category: gemcanvas.CategoryRateLimited, Message: "too many requests"},
			},
			want: View{
				Kind:  "error",
				Error: &ErrorView{Category: "rate_limited", Message: "too many requests"},
			},
			wantStatus: http.StatusTooManyRequests,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ViewFromResult(tt.result))
			assert.Equal(t, tt.wantStatus, statusForResult(tt.result))
		})
	}
}
