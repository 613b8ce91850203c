package search

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ehr/healthquery/internal/platform/fhir"
	"github.com/ehr/healthquery/internal/platform/nlp"
)

type Handler struct {
	interp *nlp.Interpreter
	svc    *Service
}

func NewHandler(interp *nlp.Interpreter, svc *Service) *Handler {
	return &Handler{interp: interp, svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/query", h.ProcessQuery)
	api.GET("/suggestions", h.GetSuggestions)
	api.GET("/examples", h.GetExamples)
	api.GET("/conditions", h.GetConditions)
	api.GET("/demo", h.Demo)
}

// QueryRequest is the body of POST /api/query.
type QueryRequest struct {
	Text string `json:"text"`
}

// QueryResponse carries everything a client needs to render one search: the
// extraction, the FHIR bundle, a flattened patient view, and statistics.
type QueryResponse struct {
	Query               string           `json:"query"`
	Explanation         string           `json:"explanation"`
	ExtractedParameters nlp.FilterSpec   `json:"extracted_parameters"`
	FHIRResponse        *fhir.Bundle     `json:"fhir_response"`
	Patients            []PatientSummary `json:"patients"`
	Statistics          Statistics       `json:"statistics"`
	TotalResults        int              `json:"total_results"`
}

func (h *Handler) ProcessQuery(c echo.Context) error {
	var req QueryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, fhir.ErrorOutcome("invalid request body"))
	}

	spec, explanation := h.interp.Interpret(req.Text)

	bundle, err := h.svc.BuildResponse(spec)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, fhir.ErrorOutcome("error processing query: "+err.Error()))
	}

	patients := FlattenPatients(bundle)

	return c.JSON(http.StatusOK, QueryResponse{
		Query:               req.Text,
		Explanation:         explanation,
		ExtractedParameters: spec,
		FHIRResponse:        bundle,
		Patients:            patients,
		Statistics:          Summarize(bundle),
		TotalResults:        len(patients),
	})
}

func (h *Handler) GetSuggestions(c echo.Context) error {
	prefix := c.QueryParam("prefix")
	return c.JSON(http.StatusOK, Suggestions(prefix))
}

func (h *Handler) GetExamples(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"description": "Example natural language queries and their processed outputs",
		"examples":    Examples(h.interp),
	})
}

func (h *Handler) GetConditions(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"supported_conditions": h.svc.Catalog().Keys(),
		"condition_details":    h.svc.Catalog().Entries(),
	})
}

const demoQuery = "Show me all female diabetic patients over 50"

func (h *Handler) Demo(c echo.Context) error {
	spec, explanation := h.interp.Interpret(demoQuery)

	bundle, err := h.svc.BuildResponse(spec)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, fhir.ErrorOutcome("demo error: "+err.Error()))
	}

	stats := Summarize(bundle)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"demo_query":     demoQuery,
		"explanation":    explanation,
		"parameters":     spec,
		"sample_results": stats.TotalPatients,
		"statistics":     stats,
	})
}
