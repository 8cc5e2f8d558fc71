// ABOUTME: Product category MCP tool handlers
// ABOUTME: Implements list_categories, add_category, update_category, and delete_category tools
package handlers

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ecommvert/siteadmin/models"
	"github.com/ecommvert/siteadmin/syncer"
)

type CategoryHandlers struct {
	syncer *syncer.Syncer
}

func NewCategoryHandlers(s *syncer.Syncer) *CategoryHandlers {
	return &CategoryHandlers{syncer: s}
}

type CategoryOutput struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Slug         string `json:"slug"`
	IsActive     bool   `json:"is_active"`
	ProductCount int    `json:"product_count,omitempty"`
}

type ListCategoriesInput struct {
	IncludeInactive bool `json:"include_inactive,omitempty" jsonschema:"Include inactive categories in the listing"`
}

type ListCategoriesOutput struct {
	Categories []CategoryOutput `json:"categories"`
}

func (h *CategoryHandlers) ListCategories(_ context.Context, request *mcp.CallToolRequest, input ListCategoriesInput) (*mcp.CallToolResult, ListCategoriesOutput, error) {
	var out ListCategoriesOutput
	for _, cat := range h.syncer.Categories() {
		if !cat.IsActive && !input.IncludeInactive {
			continue
		}
		out.Categories = append(out.Categories, categoryToOutput(cat))
	}
	return nil, out, nil
}

type AddCategoryInput struct {
	Name        string `json:"name" jsonschema:"Category name (required); the slug is derived and deduplicated automatically"`
	Description string `json:"description,omitempty" jsonschema:"Category description"`
}

func (h *CategoryHandlers) AddCategory(_ context.Context, request *mcp.CallToolRequest, input AddCategoryInput) (*mcp.CallToolResult, CategoryOutput, error) {
	if input.Name == "" {
		return nil, CategoryOutput{}, fmt.Errorf("name is required")
	}
	cat := h.syncer.AddCategory(input.Name, input.Description)
	return nil, categoryToOutput(cat), nil
}

type UpdateCategoryInput struct {
	ID          string `json:"id" jsonschema:"Category ID (required)"`
	Name        string `json:"name,omitempty" jsonschema:"Updated name; renaming re-derives the slug"`
	Description string `json:"description,omitempty" jsonschema:"Updated description"`
	IsActive    *bool  `json:"is_active,omitempty" jsonschema:"Set active visibility"`
}

func (h *CategoryHandlers) UpdateCategory(_ context.Context, request *mcp.CallToolRequest, input UpdateCategoryInput) (*mcp.CallToolResult, CategoryOutput, error) {
	if input.ID == "" {
		return nil, CategoryOutput{}, fmt.Errorf("id is required")
	}
	id, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, CategoryOutput{}, fmt.Errorf("invalid id: %w", err)
	}

	patch := syncer.CategoryPatch{IsActive: input.IsActive}
	if input.Name != "" {
		patch.Name = &input.Name
	}
	if input.Description != "" {
		patch.Description = &input.Description
	}

	cat, err := h.syncer.UpdateCategory(id, patch)
	if err != nil {
		return nil, CategoryOutput{}, fmt.Errorf("failed to update category: %w", err)
	}
	return nil, categoryToOutput(cat), nil
}

type DeleteCategoryInput struct {
	ID string `json:"id" jsonschema:"Category ID (required)"`
}

func (h *CategoryHandlers) DeleteCategory(ctx context.Context, request *mcp.CallToolRequest, input DeleteCategoryInput) (*mcp.CallToolResult, DeleteOutput, error) {
	if input.ID == "" {
		return nil, DeleteOutput{}, fmt.Errorf("id is required")
	}
	id, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("invalid id: %w", err)
	}

	if !h.syncer.DeleteCategory(ctx, id) {
		return nil, DeleteOutput{}, fmt.Errorf("category not found")
	}
	return nil, DeleteOutput{
		Success: true,
		Message: fmt.Sprintf("Deleted category: %s", id),
	}, nil
}

func categoryToOutput(cat models.ProductCategory) CategoryOutput {
	return CategoryOutput{
		ID:           cat.ID.String(),
		Name:         cat.Name,
		Description:  cat.Description,
		Slug:         cat.Slug,
		IsActive:     cat.IsActive,
		ProductCount: cat.ProductCount,
	}
}
