// ABOUTME: Row mapping between domain entities and remote store rows
// ABOUTME: Flattens nested fields to snake_case columns and applies null defaults
package syncer

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/ecommvert/siteadmin/models"
	"github.com/ecommvert/siteadmin/store"
)

func caseStudyToRow(cs models.CaseStudy) store.Row {
	results, _ := json.Marshal(cs.Results)

	row := store.Row{
		"id":                 cs.ID.String(),
		"title":              cs.Title,
		"category":           cs.Category,
		"industry":           cs.Industry,
		"client":             cs.Client,
		"duration":           cs.Duration,
		"monthly_spend":      cs.MonthlySpend,
		"challenge":          cs.Challenge,
		"solution":           cs.Solution,
		"results":            string(results),
		"image_url":          cs.ImageURL,
		"testimonial_quote":  cs.TestimonialQuote,
		"testimonial_author": cs.TestimonialAuthor,
		"testimonial_role":   cs.TestimonialRole,
		"is_active":          cs.IsActive,
		"created_at":         cs.CreatedAt,
		"updated_at":         cs.UpdatedAt,
	}
	if cs.Detailed != nil {
		detailed, _ := json.Marshal(cs.Detailed)
		row["detailed"] = string(detailed)
	} else {
		row["detailed"] = nil
	}
	return row
}

// rowToCaseStudy maps a remote row back to the domain shape. Null fields
// get fallback values: a missing results document becomes the template set
// and a missing is_active flag defaults to active.
func rowToCaseStudy(row store.Row) (models.CaseStudy, bool) {
	id, err := uuid.Parse(rowString(row, "id"))
	if err != nil {
		return models.CaseStudy{}, false
	}

	cs := models.CaseStudy{
		ID:                id,
		Title:             rowString(row, "title"),
		Category:          rowString(row, "category"),
		Industry:          rowString(row, "industry"),
		Client:            rowString(row, "client"),
		Duration:          rowString(row, "duration"),
		MonthlySpend:      rowString(row, "monthly_spend"),
		Challenge:         rowString(row, "challenge"),
		Solution:          rowString(row, "solution"),
		Results:           models.DecodeResults([]byte(rowString(row, "results"))),
		ImageURL:          rowString(row, "image_url"),
		TestimonialQuote:  rowString(row, "testimonial_quote"),
		TestimonialAuthor: rowString(row, "testimonial_author"),
		TestimonialRole:   rowString(row, "testimonial_role"),
		IsActive:          rowBool(row, "is_active", true),
		CreatedAt:         rowTime(row, "created_at"),
		UpdatedAt:         rowTime(row, "updated_at"),
	}

	if raw := rowString(row, "detailed"); raw != "" {
		var detailed models.DetailedContent
		if err := json.Unmarshal([]byte(raw), &detailed); err == nil {
			cs.Detailed = &detailed
		}
	}
	return cs, true
}

func categoryToRow(cat models.ProductCategory) store.Row {
	return store.Row{
		"id":            cat.ID.String(),
		"name":          cat.Name,
		"description":   cat.Description,
		"slug":          cat.Slug,
		"is_active":     cat.IsActive,
		"product_count": cat.ProductCount,
		"created_at":    cat.CreatedAt,
		"updated_at":    cat.UpdatedAt,
	}
}

func rowToCategory(row store.Row) (models.ProductCategory, bool) {
	id, err := uuid.Parse(rowString(row, "id"))
	if err != nil {
		return models.ProductCategory{}, false
	}

	cat := models.ProductCategory{
		ID:           id,
		Name:         rowString(row, "name"),
		Description:  rowString(row, "description"),
		Slug:         rowString(row, "slug"),
		IsActive:     rowBool(row, "is_active", true),
		ProductCount: rowInt(row, "product_count"),
		CreatedAt:    rowTime(row, "created_at"),
		UpdatedAt:    rowTime(row, "updated_at"),
	}
	if cat.Slug == "" {
		cat.Slug = models.Slugify(cat.Name)
	}
	return cat, true
}

func extraToRow(extra models.ProductExtra) store.Row {
	payload, _ := json.Marshal(extra)
	return store.Row{
		"product_id": extra.ProductID,
		"payload":    string(payload),
	}
}

func facetsToRow(facets models.ProductFilterFacets) store.Row {
	payload, _ := json.Marshal(facets)
	return store.Row{
		"product_id": facets.ProductID,
		"payload":    string(payload),
	}
}

func rowString(row store.Row, key string) string {
	switch v := row[key].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return ""
	}
}

func rowBool(row store.Row, key string, fallback bool) bool {
	switch v := row[key].(type) {
	case bool:
		return v
	case int64:
		return v != 0
	case string:
		return v == "true" || v == "t" || v == "1"
	default:
		return fallback
	}
}

func rowInt(row store.Row, key string) int {
	switch v := row[key].(type) {
	case int64:
		return int(v)
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}

func rowTime(row store.Row, key string) time.Time {
	switch v := row[key].(type) {
	case time.Time:
		return v
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t
		}
	}
	return time.Time{}
}
