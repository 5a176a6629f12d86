// Package web serves the single-page front end and binds it to the
// generation dispatcher and artifact cleanup.
package web

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/samber/lo"

	"github.com/jfickel/gemcanvas"
	"github.com/jfickel/gemcanvas/artifact"
	"github.com/jfickel/gemcanvas/internal/sl"
)

//go:embed index.html
var indexPage []byte

// maxUploadBytes caps the multipart form we are willing to parse; the
// dispatcher enforces the tighter per-image limit.
const maxUploadBytes = 32 << 20

// Server maps HTTP requests onto Dispatch and CleanupAll.
type Server struct {
	dispatcher *gemcanvas.Dispatcher
	store      *artifact.Store
	cleanup    artifact.CleanupPolicy
	timeout    time.Duration
	logger     *slog.Logger
}

// NewServer wires the presentation layer. timeout bounds each remote call;
// zero means no bound beyond the client's patience.
func NewServer(dispatcher *gemcanvas.Dispatcher, store *artifact.Store, cleanup artifact.CleanupPolicy, timeout time.Duration, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		dispatcher: dispatcher,
		store:      store,
		cleanup:    cleanup,
		timeout:    timeout,
		logger:     logger.With(sl.Module("web")),
	}
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/api/generate", s.handleGenerate).Methods(http.MethodPost)
	r.HandleFunc("/api/cleanup", s.handleCleanup).Methods(http.MethodPost)
	r.HandleFunc("/artifacts/{name}", s.handleArtifact).Methods(http.MethodGet)
	return r
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexPage)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.logger.Debug("bad multipart form", sl.Err(err))
		writeJSON(w, http.StatusBadRequest, View{
			Kind:  string(gemcanvas.KindError),
			Error: &ErrorView{Category: string(gemcanvas.CategoryValidation), Message: "malformed upload"},
		})
		return
	}

	req := gemcanvas.Request{Prompt: r.FormValue("prompt")}

	image, err := readSourceImage(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, View{
			Kind:  string(gemcanvas.KindError),
			Error: &ErrorView{Category: string(gemcanvas.CategoryValidation), Message: err.Error()},
		})
		return
	}
	req.SourceImage = image

	ctx := r.Context()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	result := s.dispatcher.Dispatch(ctx, req)
	writeJSON(w, statusForResult(result), ViewFromResult(result))
}

func (s *Server) handleCleanup(w http.ResponseWriter, _ *http.Request) {
	summary := s.cleanup.CleanupAll()
	writeJSON(w, http.StatusOK, map[string]any{
		"summary":      summary.String(),
		"removed":      summary.Removed,
		"already_gone": summary.AlreadyGone,
		"failed":       summary.Failed,
	})
}

func (s *Server) handleArtifact(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if name == "" || strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	http.ServeFile(w, r, filepath.Join(s.store.Dir(), name))
}

// readSourceImage extracts the optional uploaded image from the form.
func readSourceImage(r *http.Request) (*gemcanvas.InputImage, error) {
	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.New("could not read uploaded image")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, gemcanvas.MaxImageSize+1))
	if err != nil {
		return nil, errors.New("could not read uploaded image")
	}
	if len(data) == 0 {
		return nil, nil
	}

	declared := header.Header.Get("Content-Type")
	mimeType := lo.Ternary(gemcanvas.ValidMIMETypes[declared], declared, http.DetectContentType(data))

	return &gemcanvas.InputImage{Data: data, MIMEType: mimeType}, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
