package rpc

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"readiness/internal/assessment"
	gatewayassessment "readiness/internal/gateway/service/assessment"
	"readiness/internal/orchestrator"
)

const (
	CreateProcedure         = "/assessment.v1.AssessmentService/Create"
	AnswerFollowUpProcedure = "/assessment.v1.AssessmentService/AnswerFollowUp"
)

type CreateRequest struct {
	assessment.AssessmentInput
	// Optional client-side rubric estimate; recorded for comparison only,
	// never authoritative.
	Score *int   `json:"score,omitempty"`
	Level string `json:"level,omitempty"`
}

type AnswerFollowUpRequest struct {
	assessment.AssessmentInput
	QuestionID string            `json:"questionId,omitempty"`
	Answer     string            `json:"answer,omitempty"`
	Answers    map[string]string `json:"answers,omitempty"`
}

type AssessmentResponse struct {
	RunID             string                      `json:"runId"`
	FormattedReport   string                      `json:"formattedReport"`
	Score             int                         `json:"score"`
	ReadinessLevel    string                      `json:"readinessLevel"`
	Description       string                      `json:"description"`
	Recommendations   string                      `json:"recommendations"`
	Cached            bool                        `json:"cached"`
	FollowUpQuestions []orchestrator.RoleQuestion `json:"followUpQuestions,omitempty"`
	Warnings          []string                    `json:"warnings,omitempty"`
}

type AssessmentHandler struct {
	svc *gatewayassessment.Service
}

func NewAssessmentHandler(svc *gatewayassessment.Service) *AssessmentHandler {
	return &AssessmentHandler{svc: svc}
}

func (h *AssessmentHandler) Create(ctx context.Context, req *connect.Request[CreateRequest]) (*connect.Response[AssessmentResponse], error) {
	out, err := h.svc.Create(ctx, req.Msg.AssessmentInput)
	if err != nil {
		return nil, toAssessmentError(err)
	}
	return connect.NewResponse(toResponse(out)), nil
}

func (h *AssessmentHandler) AnswerFollowUp(ctx context.Context, req *connect.Request[AnswerFollowUpRequest]) (*connect.Response[AssessmentResponse], error) {
	answers := req.Msg.Answers
	if answers == nil {
		answers = make(map[string]string)
	}
	if id := strings.TrimSpace(req.Msg.QuestionID); id != "" {
		answers[id] = req.Msg.Answer
	}
	out, err := h.svc.AnswerFollowUp(ctx, req.Msg.AssessmentInput, answers)
	if err != nil {
		return nil, toAssessmentError(err)
	}
	return connect.NewResponse(toResponse(out)), nil
}

// Routes returns the two unary handlers mounted under the service path.
func (h *AssessmentHandler) Routes() map[string]http.Handler {
	codec := connect.WithCodec(jsonCodec{})
	return map[string]http.Handler{
		CreateProcedure:         connect.NewUnaryHandler(CreateProcedure, h.Create, codec),
		AnswerFollowUpProcedure: connect.NewUnaryHandler(AnswerFollowUpProcedure, h.AnswerFollowUp, codec),
	}
}

func toResponse(out *gatewayassessment.Result) *AssessmentResponse {
	return &AssessmentResponse{
		RunID:             out.Fingerprint,
		FormattedReport:   out.Formatted,
		Score:             out.Score,
		ReadinessLevel:    out.Level,
		Description:       out.Description,
		Recommendations:   out.Recommendations,
		Cached:            out.Cached,
		FollowUpQuestions: out.Questions,
		Warnings:          out.Warnings,
	}
}

func toAssessmentError(err error) error {
	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "required"), strings.Contains(msg, "unknown option"):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case strings.Contains(msg, "not found"):
		return connect.NewError(connect.CodeNotFound, err)
	default:
		return connect.NewError(connect.CodeInternal, fmt.Errorf("assessment service failed: %w", err))
	}
}
