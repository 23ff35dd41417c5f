package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/kozaktomas/physiognomy/internal/catalog"
	"github.com/kozaktomas/physiognomy/internal/constants"
	"github.com/kozaktomas/physiognomy/internal/evaluator"
	"github.com/kozaktomas/physiognomy/internal/interpret"
	"github.com/kozaktomas/physiognomy/internal/landmark"
)

// InterpretHandler analyzes a face and adds a narrative reading.
type InterpretHandler struct {
	catalog     *catalog.Catalog
	interpreter *interpret.Interpreter
}

func NewInterpretHandler(cat *catalog.Catalog, interpreter *interpret.Interpreter) *InterpretHandler {
	return &InterpretHandler{catalog: cat, interpreter: interpreter}
}

// InterpretRequest carries landmarks and optional personal details.
type InterpretRequest struct {
	Person    interpret.Person    `json:"person"`
	Landmarks []landmark.Landmark `json:"landmarks" validate:"dive"`
}

// InterpretResponse is the report together with its interpretation.
type InterpretResponse struct {
	ID        string                    `json:"id"`
	Person    interpret.Person          `json:"person"`
	Report    *evaluator.Report         `json:"report"`
	Tags      []string                  `json:"tags"`
	Interpret *interpret.Interpretation `json:"interpret"`
	Source    string                    `json:"source"`
	Fallback  bool                      `json:"fallback"`
}

// Interpret handles POST /api/v1/interpret.
func (h *InterpretHandler) Interpret(w http.ResponseWriter, r *http.Request) {
	var req InterpretRequest
	if err := decodeRequest(w, r, constants.MaxLandmarkBodySize, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	analysis, err := analyze(req.Landmarks, h.catalog, "interpret")
	if errors.Is(err, evaluator.ErrNoLandmarks) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	result := h.interpreter.Interpret(r.Context(), analysis.Report, req.Person)
	interpretations.WithLabelValues(result.Source).Inc()

	respondJSON(w, http.StatusOK, InterpretResponse{
		ID:        uuid.NewString(),
		Person:    req.Person,
		Report:    analysis.Report,
		Tags:      analysis.Tags,
		Interpret: result.Interpretation,
		Source:    result.Source,
		Fallback:  result.Fallback,
	})
}
