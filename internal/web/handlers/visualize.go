package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/kozaktomas/physiognomy/internal/config"
	"github.com/kozaktomas/physiognomy/internal/constants"
	"github.com/kozaktomas/physiognomy/internal/landmark"
	"github.com/kozaktomas/physiognomy/internal/log"
	"github.com/kozaktomas/physiognomy/internal/overlay"
)

// VisualizeHandler renders landmark overlays.
type VisualizeHandler struct {
	config *config.Config
}

func NewVisualizeHandler(cfg *config.Config) *VisualizeHandler {
	return &VisualizeHandler{config: cfg}
}

// Visualize handles POST /api/v1/visualize. The multipart form carries the
// photo in "image", the landmarks JSON in "landmarks" and an optional
// "max_size" overriding the configured limit. The response is a PNG.
func (h *VisualizeHandler) Visualize(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxUploadSize)
	if err := r.ParseMultipartForm(constants.MaxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		respondError(w, http.StatusBadRequest, "image is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read image")
		return
	}

	points, err := landmark.Decode(strings.NewReader(r.FormValue("landmarks")))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid landmarks")
		return
	}

	opts := overlay.Options{MaxSize: h.config.Overlay.MaxSize}
	if s := r.FormValue("max_size"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			respondError(w, http.StatusBadRequest, "max_size must be a non-negative integer")
			return
		}
		opts.MaxSize = n
	}

	result, err := overlay.Render(data, points, opts)
	if errors.Is(err, overlay.ErrDecode) {
		respondError(w, http.StatusBadRequest, "unsupported image format")
		return
	}
	if err != nil {
		log.WithRequestID(r.Context()).WithError(err).Error("failed to render overlay")
		respondError(w, http.StatusInternalServerError, "failed to render overlay")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Overlay-Scale", strconv.FormatFloat(result.Scale, 'f', -1, 64))
	w.Header().Set("X-Overlay-Dots", strconv.Itoa(len(result.Dots)))
	w.WriteHeader(http.StatusOK)
	w.Write(result.PNG)
}
