// ABOUTME: Tests for row mapping between domain entities and store rows
// ABOUTME: Covers roundtrips, null fallbacks, and driver type coercions
package syncer

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecommvert/siteadmin/models"
	"github.com/ecommvert/siteadmin/store"
)

func TestCaseStudyRowRoundtrip(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	cs := models.CaseStudy{
		ID:           uuid.New(),
		Title:        "Scaling Shopping Campaigns",
		Category:     "ecommerce",
		Industry:     "Retail",
		Client:       "Acme Outdoors",
		MonthlySpend: "$25k",
		Challenge:    "flat ROAS",
		Solution:     "feed restructure",
		Results:      models.TemplateResultSet(),
		IsActive:     true,
		Detailed: &models.DetailedContent{
			Overview: "Full restructure of the shopping feed.",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	back, ok := rowToCaseStudy(caseStudyToRow(cs))
	require.True(t, ok)
	assert.Equal(t, cs.ID, back.ID)
	assert.Equal(t, cs.Title, back.Title)
	assert.Equal(t, cs.Results, back.Results)
	require.NotNil(t, back.Detailed)
	assert.Equal(t, cs.Detailed.Overview, back.Detailed.Overview)
	assert.Equal(t, now, back.CreatedAt)
}

func TestRowToCaseStudyRejectsBadID(t *testing.T) {
	_, ok := rowToCaseStudy(store.Row{"id": "not-a-uuid", "title": "x"})
	assert.False(t, ok)
}

func TestRowToCaseStudyNullDefaults(t *testing.T) {
	cs, ok := rowToCaseStudy(store.Row{"id": uuid.New().String()})
	require.True(t, ok)
	assert.True(t, cs.IsActive, "null is_active defaults to active")
	assert.Equal(t, models.TemplateResultSet(), cs.Results)
	assert.Nil(t, cs.Detailed)
}

func TestRowToCategoryDerivesMissingSlug(t *testing.T) {
	cat, ok := rowToCategory(store.Row{
		"id":   uuid.New().String(),
		"name": "Bid Management Tools",
	})
	require.True(t, ok)
	assert.Equal(t, "bid-management-tools", cat.Slug)
}

func TestRowCoercions(t *testing.T) {
	row := store.Row{
		"title":         []byte("bytes title"),
		"is_active":     int64(0),
		"product_count": float64(7),
		"created_at":    "2026-01-15T10:30:00Z",
	}

	assert.Equal(t, "bytes title", rowString(row, "title"))
	assert.False(t, rowBool(row, "is_active", true))
	assert.Equal(t, 7, rowInt(row, "product_count"))
	assert.Equal(t, 2026, rowTime(row, "created_at").Year())
}

func TestExtraRowUsesProductIDKey(t *testing.T) {
	row := extraToRow(models.ProductExtra{ProductID: "prod_9", Draft: true})
	assert.Equal(t, "prod_9", row["product_id"])
	assert.Contains(t, row["payload"], `"draft":true`)
}
