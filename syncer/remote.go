// ABOUTME: Remote reconciliation operations: pull, push, and destructive replace
// ABOUTME: Plus best-effort per-item deletes and fire-and-forget facet mirroring
package syncer

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/ecommvert/siteadmin/cache"
	"github.com/ecommvert/siteadmin/models"
	"github.com/ecommvert/siteadmin/store"
)

const mirrorTimeout = 30 * time.Second

// Pull fetches case studies and categories from the remote store and
// replaces local state — but only with a non-empty result. An empty remote
// read is ambiguous between "legitimately empty" and "misconfigured", so
// Pull never destroys non-empty local state with it.
func (s *Syncer) Pull(ctx context.Context) error {
	rows, err := s.gateway.Query(ctx, store.TableCaseStudies, store.Filter{OrderBy: "created_at"})
	if err != nil {
		return fmt.Errorf("failed to pull case studies: %w", err)
	}
	catRows, err := s.gateway.Query(ctx, store.TableCategories, store.Filter{OrderBy: "name"})
	if err != nil {
		return fmt.Errorf("failed to pull categories: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(rows) > 0 {
		studies := make([]models.CaseStudy, 0, len(rows))
		for _, row := range rows {
			if cs, ok := rowToCaseStudy(row); ok {
				studies = append(studies, cs)
			} else {
				log.Printf("syncer: skipping case study row with unparseable id: %v", row["id"])
			}
		}
		s.caseStudies = studies
		s.persistCaseStudies()
		s.notify(cache.NSCaseStudies)
	}

	if len(catRows) > 0 {
		categories := make([]models.ProductCategory, 0, len(catRows))
		for _, row := range catRows {
			if cat, ok := rowToCategory(row); ok {
				categories = append(categories, cat)
			} else {
				log.Printf("syncer: skipping category row with unparseable id: %v", row["id"])
			}
		}
		s.categories = categories
		s.persistCategories()
		s.notify(cache.NSCategories)
	}
	return nil
}

// Push upserts every local case study and category to the remote store.
// It is additive and overwriting only: rows that exist remotely but not
// locally are never deleted, so a partial local view cannot cause remote
// data loss.
func (s *Syncer) Push(ctx context.Context) error {
	csRows, catRows := s.snapshotRows()

	if _, err := s.gateway.Write(ctx, store.TableCaseStudies, csRows, store.WriteUpsert, "id"); err != nil {
		return fmt.Errorf("failed to push case studies: %w", err)
	}
	if _, err := s.gateway.Write(ctx, store.TableCategories, catRows, store.WriteUpsert, "id"); err != nil {
		return fmt.Errorf("failed to push categories: %w", err)
	}
	return nil
}

// Replace wipes each remote table and pushes the local collection into it.
// This is the only path that deletes remote rows wholesale; callers must
// gate it behind an explicit confirmation naming the destructive
// consequence. If the erase fails no write is attempted, but a failure
// after a successful erase leaves the table empty — the accepted risk of
// the destructive path.
func (s *Syncer) Replace(ctx context.Context) error {
	csRows, catRows := s.snapshotRows()

	if _, err := s.gateway.Erase(ctx, store.TableCaseStudies, store.Selector{All: true, Key: "id"}); err != nil {
		return fmt.Errorf("failed to erase case studies: %w", err)
	}
	if _, err := s.gateway.Write(ctx, store.TableCaseStudies, csRows, store.WriteUpsert, "id"); err != nil {
		return fmt.Errorf("failed to replace case studies: %w", err)
	}

	if _, err := s.gateway.Erase(ctx, store.TableCategories, store.Selector{All: true, Key: "id"}); err != nil {
		return fmt.Errorf("failed to erase categories: %w", err)
	}
	if _, err := s.gateway.Write(ctx, store.TableCategories, catRows, store.WriteUpsert, "id"); err != nil {
		return fmt.Errorf("failed to replace categories: %w", err)
	}
	return nil
}

func (s *Syncer) snapshotRows() (csRows, catRows []store.Row) {
	s.mu.Lock()
	defer s.mu.Unlock()

	csRows = make([]store.Row, len(s.caseStudies))
	for i, cs := range s.caseStudies {
		csRows[i] = caseStudyToRow(cs)
	}
	catRows = make([]store.Row, len(s.categories))
	for i, cat := range s.categories {
		catRows[i] = categoryToRow(cat)
	}
	return csRows, catRows
}

// DeleteCaseStudy removes a case study locally, then issues a best-effort
// remote delete. A remote failure is logged, never rolled back: local
// state stays authoritative for the admin session.
func (s *Syncer) DeleteCaseStudy(ctx context.Context, id uuid.UUID) bool {
	if !s.removeCaseStudy(id) {
		return false
	}
	if _, err := s.gateway.Erase(ctx, store.TableCaseStudies, store.Selector{ID: id.String()}); err != nil {
		log.Printf("syncer: remote delete of case study %s failed: %v", id, err)
	}
	return true
}

// DeleteCategory removes a category locally, then issues a best-effort
// remote delete.
func (s *Syncer) DeleteCategory(ctx context.Context, id uuid.UUID) bool {
	if !s.removeCategory(id) {
		return false
	}
	if _, err := s.gateway.Erase(ctx, store.TableCategories, store.Selector{ID: id.String()}); err != nil {
		log.Printf("syncer: remote delete of category %s failed: %v", id, err)
	}
	return true
}

func (s *Syncer) removeCaseStudy(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.caseStudies {
		if s.caseStudies[i].ID == id {
			s.caseStudies = append(s.caseStudies[:i], s.caseStudies[i+1:]...)
			s.persistCaseStudies()
			s.notify(cache.NSCaseStudies)
			return true
		}
	}
	return false
}

func (s *Syncer) removeCategory(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.categories {
		if s.categories[i].ID == id {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			s.persistCategories()
			s.notify(cache.NSCategories)
			return true
		}
	}
	return false
}

// SetProductExtra stores catalog product metadata locally and mirrors it
// to the side table in the background. Mirror failures are logged, never
// surfaced: extras are enhancements, not primary content.
func (s *Syncer) SetProductExtra(extra models.ProductExtra) {
	s.mu.Lock()
	s.extras[extra.ProductID] = extra
	s.persistExtras()
	s.notify(cache.NSExtras)
	s.mu.Unlock()

	s.mirror(store.TableExtras, extraToRow(extra))
}

// SetProductFacets stores a facet assignment locally and mirrors it to the
// side table in the background.
func (s *Syncer) SetProductFacets(facets models.ProductFilterFacets) {
	s.mu.Lock()
	s.facets[facets.ProductID] = facets
	s.persistFacets()
	s.notify(cache.NSFacets)
	s.mu.Unlock()

	s.mirror(store.TableFacets, facetsToRow(facets))
}

func (s *Syncer) mirror(table string, row store.Row) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), mirrorTimeout)
		defer cancel()
		if _, err := s.gateway.Write(ctx, table, []store.Row{row}, store.WriteUpsert, "product_id"); err != nil {
			log.Printf("syncer: best-effort mirror to %s failed: %v", table, err)
		}
	}()
}

// Status summarizes local collections for the CLI and TUI.
type Status struct {
	CaseStudies  int
	Categories   int
	Testimonials int
	BlogPosts    int
	Extras       int
	Facets       int
	LastWrites   map[string]*time.Time
}

// CollectStatus reports collection sizes and cache write times.
func (s *Syncer) CollectStatus() Status {
	s.mu.Lock()
	st := Status{
		CaseStudies:  len(s.caseStudies),
		Categories:   len(s.categories),
		Testimonials: len(s.testimonials),
		BlogPosts:    len(s.blogPosts),
		Extras:       len(s.extras),
		Facets:       len(s.facets),
		LastWrites:   make(map[string]*time.Time),
	}
	s.mu.Unlock()

	for _, ns := range []string{
		cache.NSCaseStudies, cache.NSCategories, cache.NSTestimonials,
		cache.NSBlogPosts, cache.NSExtras, cache.NSFacets,
	} {
		if t, err := s.cache.LastWrite(ns); err == nil {
			st.LastWrites[ns] = t
		}
	}
	return st
}
