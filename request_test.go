package gemcanvas

import (
	"errors"
	"testing"
)

func TestValidatePrompt(t *testing.T) {
	tests := []struct {
		name    string
		prompt  string
		wantErr error
	}{
		{
			name:    "valid prompt",
			prompt:  "A sunset over mountains",
			wantErr: nil,
		},
		{
			name:    "empty prompt",
			prompt:  "",
			wantErr: ErrEmptyPrompt,
		},
		{
			name:    "whitespace-only prompt",
			prompt:  "   \t\n",
			wantErr: ErrEmptyPrompt,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePrompt(tt.prompt)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidatePrompt() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateInputImage(t *testing.T) {
	tests := []struct {
		name    string
		img     *InputImage
		wantErr error
	}{
		{
			name: "valid image",
			img: &InputImage{
				Data:     []byte("fake image data"),
				MIMEType: "image/png",
			},
			wantErr: nil,
		},
		{
			name:    "nil image is allowed",
			img:     nil,
			wantErr: nil,
		},
		{
			name:    "empty image",
			img:     &InputImage{},
			wantErr: ErrEmptyImageData,
		},
		{
			name: "missing MIME type",
			img: &InputImage{
				Data: []byte("fake image data"),
			},
			wantErr: ErrInvalidMIMEType,
		},
		{
			name: "invalid MIME type",
			img: &InputImage{
				Data:     []byte("fake image data"),
				MIMEType: "text/plain",
			},
			wantErr: ErrInvalidMIMEType,
		},
		{
			name: "image too large",
			img: &InputImage{
				Data:     make([]byte, MaxImageSize+1),
				MIMEType: "image/png",
			},
			wantErr: ErrImageTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInputImage(tt.img)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateInputImage() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRequestValidate(t *testing.T) {
	req := Request{
		Prompt:      "describe this",
		SourceImage: &InputImage{Data: []byte("img"), MIMEType: "image/jpeg"},
	}
	if err := req.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	req = Request{
		Prompt:      "",
		SourceImage: &InputImage{Data: []byte("img"), MIMEType: "image/jpeg"},
	}
	if err := req.Validate(); !errors.Is(err, ErrEmptyPrompt) {
		t.Errorf("expected ErrEmptyPrompt, got %v", err)
	}
}
