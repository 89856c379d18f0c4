package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/MikeSquared-Agency/Kinship/internal/catalogue"
	"github.com/MikeSquared-Agency/Kinship/internal/intake"
	"github.com/MikeSquared-Agency/Kinship/internal/scoring"
	"github.com/MikeSquared-Agency/Kinship/internal/store"
)

const maxSubmissionBytes = 1 << 20

type AssessmentHandler struct {
	svc    *intake.Service
	schema *jsonschema.Schema
}

func NewAssessmentHandler(svc *intake.Service) (*AssessmentHandler, error) {
	schema, err := compileSubmissionSchema()
	if err != nil {
		return nil, err
	}
	return &AssessmentHandler{svc: svc, schema: schema}, nil
}

type submissionRequest struct {
	Answers []scoring.Answer `json:"answers"`
	// SessionID is accepted for client compatibility; every analysis gets a
	// fresh server-side id.
	SessionID *string `json:"session_id"`
}

type structuredResponse struct {
	Sections       []catalogue.Section `json:"sections"`
	TotalQuestions int                 `json:"total_questions"`
}

type healthResponse struct {
	Status         string               `json:"status"`
	TotalQuestions int                  `json:"total_questions"`
	Categories     []catalogue.Category `json:"categories"`
}

func (h *AssessmentHandler) Questions(w http.ResponseWriter, r *http.Request) {
	cat := h.svc.Catalogue()
	raw := r.URL.Query().Get("category")
	if raw == "" {
		writeJSON(w, http.StatusOK, cat.Questions())
		return
	}
	c, err := catalogue.ParseCategory(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	qs := cat.ByCategory(c)
	if qs == nil {
		qs = []catalogue.Question{}
	}
	writeJSON(w, http.StatusOK, qs)
}

func (h *AssessmentHandler) Structured(w http.ResponseWriter, r *http.Request) {
	cat := h.svc.Catalogue()
	writeJSON(w, http.StatusOK, structuredResponse{
		Sections:       cat.Sections(),
		TotalQuestions: cat.Len(),
	})
}

func (h *AssessmentHandler) Health(w http.ResponseWriter, r *http.Request) {
	cat := h.svc.Catalogue()
	writeJSON(w, http.StatusOK, healthResponse{
		Status:         "healthy",
		TotalQuestions: cat.Len(),
		Categories:     cat.PresentCategories(),
	})
}

func (h *AssessmentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxSubmissionBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read body")
		return
	}
	if len(body) > maxSubmissionBytes {
		h.svc.RejectMalformed(store.SourceHTTP, errors.New("body too large"))
		writeError(w, http.StatusRequestEntityTooLarge, "submission too large")
		return
	}

	req, err := h.decode(body)
	if err != nil {
		h.svc.RejectMalformed(store.SourceHTTP, err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Malformed submission", Details: err.Error()})
		return
	}

	result, err := h.svc.Submit(r.Context(), req.Answers, store.SourceHTTP)
	if err != nil {
		h.writeSubmitError(w, err, len(req.Answers))
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// decode checks the body against the submission schema before binding it.
func (h *AssessmentHandler) decode(body []byte) (*submissionRequest, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	if err := h.schema.Validate(doc); err != nil {
		return nil, err
	}
	var req submissionRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("decode submission: %w", err)
	}
	return &req, nil
}

func (h *AssessmentHandler) writeSubmitError(w http.ResponseWriter, err error, n int) {
	var verr *scoring.ValidationError
	switch {
	case errors.Is(err, scoring.ErrNoAnswers):
		writeError(w, http.StatusBadRequest, "No answers provided")
	case errors.Is(err, scoring.ErrInsufficientAnswers):
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("Insufficient answers: received %d, minimum %d required", n, h.svc.MinAnswers()))
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid answers", Details: verr.Issues})
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *AssessmentHandler) Result(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.Report(r.Context(), chi.URLParam(r, "session_id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "result not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// List is the admin view over the archive. Filters: risk_level, min_step,
// since (RFC 3339), limit, offset.
func (h *AssessmentHandler) List(w http.ResponseWriter, r *http.Request) {
	f, err := parseReportFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	reports, err := h.svc.Reports(r.Context(), f)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if reports == nil {
		reports = []*store.Report{}
	}
	writeJSON(w, http.StatusOK, reports)
}

func parseReportFilter(r *http.Request) (store.ReportFilter, error) {
	var f store.ReportFilter
	q := r.URL.Query()

	if v := q.Get("risk_level"); v != "" {
		level := scoring.RiskLevel(v)
		switch level {
		case scoring.RiskLow, scoring.RiskMedium, scoring.RiskHigh:
			f.RiskLevel = &level
		default:
			return f, fmt.Errorf("invalid risk_level %q", v)
		}
	}
	if v := q.Get("min_step"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > 4 {
			return f, fmt.Errorf("invalid min_step %q", v)
		}
		f.MinStep = &n
	}
	if v := q.Get("since"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return f, fmt.Errorf("invalid since %q", v)
		}
		f.Since = &t
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return f, fmt.Errorf("invalid limit %q", v)
		}
		f.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return f, fmt.Errorf("invalid offset %q", v)
		}
		f.Offset = n
	}
	return f, nil
}

func (h *AssessmentHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
