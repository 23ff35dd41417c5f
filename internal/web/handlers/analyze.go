package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/kozaktomas/physiognomy/internal/catalog"
	"github.com/kozaktomas/physiognomy/internal/constants"
	"github.com/kozaktomas/physiognomy/internal/evaluator"
	"github.com/kozaktomas/physiognomy/internal/landmark"
	"github.com/kozaktomas/physiognomy/internal/log"
	"github.com/kozaktomas/physiognomy/internal/metric"
)

// AnalyzeHandler evaluates landmark sets against the rule catalog.
type AnalyzeHandler struct {
	catalog *catalog.Catalog
}

func NewAnalyzeHandler(cat *catalog.Catalog) *AnalyzeHandler {
	return &AnalyzeHandler{catalog: cat}
}

// AnalyzeRequest carries named landmarks in pixel coordinates.
type AnalyzeRequest struct {
	Landmarks      []landmark.Landmark `json:"landmarks" validate:"dive"`
	IncludeMetrics bool                `json:"include_metrics"`
}

// MeshRequest carries a raw face mesh in relative coordinates.
type MeshRequest struct {
	Width          int                  `json:"width" validate:"gt=0"`
	Height         int                  `json:"height" validate:"gt=0"`
	Mesh           []landmark.MeshPoint `json:"mesh"`
	IncludeMetrics bool                 `json:"include_metrics"`
}

// AnalyzeResponse is the result of one analysis.
type AnalyzeResponse struct {
	ID        string              `json:"id"`
	Report    *evaluator.Report   `json:"report"`
	Tags      []string            `json:"tags"`
	Landmarks []landmark.Landmark `json:"landmarks"`
	Metrics   []metric.Result     `json:"metrics,omitempty"`
}

// Analyze handles POST /api/v1/analyze.
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := decodeRequest(w, r, constants.MaxLandmarkBodySize, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.respond(w, r, "landmarks", req.Landmarks, req.IncludeMetrics)
}

// AnalyzeMesh handles POST /api/v1/analyze/mesh.
func (h *AnalyzeHandler) AnalyzeMesh(w http.ResponseWriter, r *http.Request) {
	var req MeshRequest
	if err := decodeRequest(w, r, constants.MaxLandmarkBodySize, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	points, err := landmark.FromMesh(req.Mesh, req.Width, req.Height)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.respond(w, r, "mesh", points, req.IncludeMetrics)
}

func (h *AnalyzeHandler) respond(w http.ResponseWriter, r *http.Request, source string, points []landmark.Landmark, includeMetrics bool) {
	analysis, err := analyze(points, h.catalog, source)
	if errors.Is(err, evaluator.ErrNoLandmarks) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	resp := AnalyzeResponse{
		ID:        uuid.NewString(),
		Report:    analysis.Report,
		Tags:      analysis.Tags,
		Landmarks: analysis.Landmarks,
	}
	if includeMetrics {
		resp.Metrics = analysis.Metrics
	}

	log.WithRequestID(r.Context()).WithFields(log.Fields{
		"analysis_id": resp.ID,
		"source":      source,
		"landmarks":   len(points),
	}).Debug("analysis completed")

	respondJSON(w, http.StatusOK, resp)
}

// analyze runs the evaluator and records metrics for the result.
func analyze(points []landmark.Landmark, cat *catalog.Catalog, source string) (*evaluator.Analysis, error) {
	start := time.Now()
	analysis, err := evaluator.Analyze(points, cat)
	if err != nil {
		return nil, err
	}
	analysisDuration.Observe(time.Since(start).Seconds())
	observeReport(source, analysis.Report)
	return analysis, nil
}
