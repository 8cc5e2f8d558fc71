// ABOUTME: Case study MCP tool handlers
// ABOUTME: Implements list_case_studies, add_case_study, update_case_study, and delete_case_study tools
package handlers

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ecommvert/siteadmin/models"
	"github.com/ecommvert/siteadmin/syncer"
)

type CaseStudyHandlers struct {
	syncer *syncer.Syncer
}

func NewCaseStudyHandlers(s *syncer.Syncer) *CaseStudyHandlers {
	return &CaseStudyHandlers{syncer: s}
}

type CaseStudyOutput struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Category     string           `json:"category,omitempty"`
	Industry     string           `json:"industry,omitempty"`
	Client       string           `json:"client,omitempty"`
	MonthlySpend string           `json:"monthly_spend,omitempty"`
	Challenge    string           `json:"challenge,omitempty"`
	Solution     string           `json:"solution,omitempty"`
	Results      models.ResultSet `json:"results"`
	IsActive     bool             `json:"is_active"`
	CreatedAt    string           `json:"created_at"`
	UpdatedAt    string           `json:"updated_at"`
}

type ListCaseStudiesInput struct {
	IncludeInactive bool `json:"include_inactive,omitempty" jsonschema:"Include inactive case studies in the listing"`
}

type ListCaseStudiesOutput struct {
	CaseStudies []CaseStudyOutput `json:"case_studies"`
}

func (h *CaseStudyHandlers) ListCaseStudies(_ context.Context, request *mcp.CallToolRequest, input ListCaseStudiesInput) (*mcp.CallToolResult, ListCaseStudiesOutput, error) {
	var out ListCaseStudiesOutput
	for _, cs := range h.syncer.CaseStudies() {
		if !cs.IsActive && !input.IncludeInactive {
			continue
		}
		out.CaseStudies = append(out.CaseStudies, caseStudyToOutput(cs))
	}
	return nil, out, nil
}

type AddCaseStudyInput struct {
	Title        string `json:"title" jsonschema:"Case study title (required)"`
	Category     string `json:"category,omitempty" jsonschema:"Content category such as ecommerce or lead-gen"`
	Industry     string `json:"industry,omitempty" jsonschema:"Client industry"`
	Client       string `json:"client,omitempty" jsonschema:"Client name"`
	MonthlySpend string `json:"monthly_spend,omitempty" jsonschema:"Monthly ad spend label"`
	Challenge    string `json:"challenge,omitempty" jsonschema:"What the client was struggling with"`
	Solution     string `json:"solution,omitempty" jsonschema:"What was done about it"`
}

func (h *CaseStudyHandlers) AddCaseStudy(_ context.Context, request *mcp.CallToolRequest, input AddCaseStudyInput) (*mcp.CallToolResult, CaseStudyOutput, error) {
	if input.Title == "" {
		return nil, CaseStudyOutput{}, fmt.Errorf("title is required")
	}

	cs := h.syncer.AddCaseStudy(models.CaseStudy{
		Title:        input.Title,
		Category:     input.Category,
		Industry:     input.Industry,
		Client:       input.Client,
		MonthlySpend: input.MonthlySpend,
		Challenge:    input.Challenge,
		Solution:     input.Solution,
	})
	return nil, caseStudyToOutput(cs), nil
}

type UpdateCaseStudyInput struct {
	ID           string `json:"id" jsonschema:"Case study ID (required)"`
	Title        string `json:"title,omitempty" jsonschema:"Updated title"`
	Category     string `json:"category,omitempty" jsonschema:"Updated category"`
	Industry     string `json:"industry,omitempty" jsonschema:"Updated industry"`
	Client       string `json:"client,omitempty" jsonschema:"Updated client name"`
	MonthlySpend string `json:"monthly_spend,omitempty" jsonschema:"Updated monthly spend label"`
	Challenge    string `json:"challenge,omitempty" jsonschema:"Updated challenge text"`
	Solution     string `json:"solution,omitempty" jsonschema:"Updated solution text"`
	IsActive     *bool  `json:"is_active,omitempty" jsonschema:"Set active visibility"`
}

func (h *CaseStudyHandlers) UpdateCaseStudy(_ context.Context, request *mcp.CallToolRequest, input UpdateCaseStudyInput) (*mcp.CallToolResult, CaseStudyOutput, error) {
	if input.ID == "" {
		return nil, CaseStudyOutput{}, fmt.Errorf("id is required")
	}
	id, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, CaseStudyOutput{}, fmt.Errorf("invalid id: %w", err)
	}

	patch := syncer.CaseStudyPatch{IsActive: input.IsActive}
	if input.Title != "" {
		patch.Title = &input.Title
	}
	if input.Category != "" {
		patch.Category = &input.Category
	}
	if input.Industry != "" {
		patch.Industry = &input.Industry
	}
	if input.Client != "" {
		patch.Client = &input.Client
	}
	if input.MonthlySpend != "" {
		patch.MonthlySpend = &input.MonthlySpend
	}
	if input.Challenge != "" {
		patch.Challenge = &input.Challenge
	}
	if input.Solution != "" {
		patch.Solution = &input.Solution
	}

	cs, err := h.syncer.UpdateCaseStudy(id, patch)
	if err != nil {
		return nil, CaseStudyOutput{}, fmt.Errorf("failed to update case study: %w", err)
	}
	return nil, caseStudyToOutput(cs), nil
}

type UpdateCaseStudyMetricInput struct {
	ID          string   `json:"id" jsonschema:"Case study ID (required)"`
	Slot        int      `json:"slot" jsonschema:"Metric slot 1-4 (required)"`
	Name        string   `json:"name,omitempty" jsonschema:"Metric display name"`
	Before      *float64 `json:"before,omitempty" jsonschema:"Value before the engagement"`
	After       *float64 `json:"after,omitempty" jsonschema:"Value after the engagement"`
	Improvement *float64 `json:"improvement,omitempty" jsonschema:"Improvement percentage"`
	Format      string   `json:"format,omitempty" jsonschema:"Display format: number, currency, percentage, percentage-only, or percentage-points"`
}

func (h *CaseStudyHandlers) UpdateCaseStudyMetric(_ context.Context, request *mcp.CallToolRequest, input UpdateCaseStudyMetricInput) (*mcp.CallToolResult, CaseStudyOutput, error) {
	if input.ID == "" {
		return nil, CaseStudyOutput{}, fmt.Errorf("id is required")
	}
	id, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, CaseStudyOutput{}, fmt.Errorf("invalid id: %w", err)
	}
	if input.Slot < 1 || input.Slot > 4 {
		return nil, CaseStudyOutput{}, fmt.Errorf("slot must be 1-4")
	}

	metric := &models.MetricPatch{
		Before:      input.Before,
		After:       input.After,
		Improvement: input.Improvement,
	}
	if input.Name != "" {
		metric.Name = &input.Name
	}
	if input.Format != "" {
		metric.Format = &input.Format
	}

	results := &models.ResultSetPatch{}
	switch input.Slot {
	case 1:
		results.Metric1 = metric
	case 2:
		results.Metric2 = metric
	case 3:
		results.Metric3 = metric
	case 4:
		results.Metric4 = metric
	}

	cs, err := h.syncer.UpdateCaseStudy(id, syncer.CaseStudyPatch{Results: results})
	if err != nil {
		return nil, CaseStudyOutput{}, fmt.Errorf("failed to update metric: %w", err)
	}
	return nil, caseStudyToOutput(cs), nil
}

type DeleteCaseStudyInput struct {
	ID string `json:"id" jsonschema:"Case study ID (required)"`
}

type DeleteOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *CaseStudyHandlers) DeleteCaseStudy(ctx context.Context, request *mcp.CallToolRequest, input DeleteCaseStudyInput) (*mcp.CallToolResult, DeleteOutput, error) {
	if input.ID == "" {
		return nil, DeleteOutput{}, fmt.Errorf("id is required")
	}
	id, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("invalid id: %w", err)
	}

	if !h.syncer.DeleteCaseStudy(ctx, id) {
		return nil, DeleteOutput{}, fmt.Errorf("case study not found")
	}
	return nil, DeleteOutput{
		Success: true,
		Message: fmt.Sprintf("Deleted case study: %s", id),
	}, nil
}

func caseStudyToOutput(cs models.CaseStudy) CaseStudyOutput {
	return CaseStudyOutput{
		ID:           cs.ID.String(),
		Title:        cs.Title,
		Category:     cs.Category,
		Industry:     cs.Industry,
		Client:       cs.Client,
		MonthlySpend: cs.MonthlySpend,
		Challenge:    cs.Challenge,
		Solution:     cs.Solution,
		Results:      cs.Results,
		IsActive:     cs.IsActive,
		CreatedAt:    cs.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:    cs.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
