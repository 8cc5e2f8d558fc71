// ABOUTME: Admin content synchronizer holding in-memory state over a local cache
// ABOUTME: Every committed mutation writes through to the cache and notifies subscribers
package syncer

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ecommvert/siteadmin/cache"
	"github.com/ecommvert/siteadmin/models"
	"github.com/ecommvert/siteadmin/store"
)

// Syncer reconciles three kinds of state: in-memory collections, the local
// persistent cache, and the remote record store. Reconciliation direction
// is always explicit and user-triggered, never automatic.
type Syncer struct {
	gateway store.Gateway
	cache   *cache.Cache

	mu           sync.Mutex
	caseStudies  []models.CaseStudy
	categories   []models.ProductCategory
	testimonials []models.Testimonial
	blogPosts    []models.BlogPost
	extras       map[string]models.ProductExtra
	facets       map[string]models.ProductFilterFacets

	subscribers []func(collection string)
}

// New builds a syncer and hydrates in-memory state from the local cache.
func New(gateway store.Gateway, c *cache.Cache) (*Syncer, error) {
	s := &Syncer{
		gateway: gateway,
		cache:   c,
		extras:  make(map[string]models.ProductExtra),
		facets:  make(map[string]models.ProductFilterFacets),
	}
	if err := s.loadFromCache(); err != nil {
		return nil, err
	}
	return s, nil
}

// Subscribe registers a change listener. Listeners are invoked after every
// committed mutation with the name of the collection that changed.
func (s *Syncer) Subscribe(fn func(collection string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *Syncer) notify(collection string) {
	for _, fn := range s.subscribers {
		fn(collection)
	}
}

// cachedCaseStudy shadows Results so legacy-shaped documents can be
// migrated while loading.
type cachedCaseStudy struct {
	models.CaseStudy
	Results json.RawMessage `json:"results"`
}

func (s *Syncer) loadFromCache() error {
	if doc, ok, err := s.cache.Load(cache.NSCaseStudies); err != nil {
		return err
	} else if ok {
		var cached []cachedCaseStudy
		if err := json.Unmarshal(doc, &cached); err != nil {
			return fmt.Errorf("failed to decode cached case studies: %w", err)
		}
		s.caseStudies = make([]models.CaseStudy, 0, len(cached))
		for _, c := range cached {
			cs := c.CaseStudy
			cs.Results = models.DecodeResults(c.Results)
			s.caseStudies = append(s.caseStudies, cs)
		}
	}

	if err := loadCollection(s.cache, cache.NSCategories, &s.categories); err != nil {
		return err
	}
	if err := loadCollection(s.cache, cache.NSTestimonials, &s.testimonials); err != nil {
		return err
	}
	if err := loadCollection(s.cache, cache.NSBlogPosts, &s.blogPosts); err != nil {
		return err
	}

	var extras []models.ProductExtra
	if err := loadCollection(s.cache, cache.NSExtras, &extras); err != nil {
		return err
	}
	for _, e := range extras {
		s.extras[e.ProductID] = e
	}

	var facets []models.ProductFilterFacets
	if err := loadCollection(s.cache, cache.NSFacets, &facets); err != nil {
		return err
	}
	for _, f := range facets {
		s.facets[f.ProductID] = f
	}
	return nil
}

func loadCollection[T any](c *cache.Cache, namespace string, dst *[]T) error {
	doc, ok, err := c.Load(namespace)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if err := json.Unmarshal(doc, dst); err != nil {
		return fmt.Errorf("failed to decode cached %s: %w", namespace, err)
	}
	return nil
}

// persist serializes a collection snapshot through to the cache. Cache
// write failures are logged, not surfaced: in-memory state stays
// authoritative for the current session.
func (s *Syncer) persist(namespace string, v any) {
	doc, err := json.Marshal(v)
	if err != nil {
		log.Printf("syncer: failed to serialize %s: %v", namespace, err)
		return
	}
	if err := s.cache.Store(namespace, doc); err != nil {
		log.Printf("syncer: failed to persist %s: %v", namespace, err)
	}
}

func (s *Syncer) persistCaseStudies() { s.persist(cache.NSCaseStudies, s.caseStudies) }
func (s *Syncer) persistCategories()  { s.persist(cache.NSCategories, s.categories) }

func (s *Syncer) persistExtras() {
	list := make([]models.ProductExtra, 0, len(s.extras))
	for _, e := range s.extras {
		list = append(list, e)
	}
	s.persist(cache.NSExtras, list)
}

func (s *Syncer) persistFacets() {
	list := make([]models.ProductFilterFacets, 0, len(s.facets))
	for _, f := range s.facets {
		list = append(list, f)
	}
	s.persist(cache.NSFacets, list)
}

// CaseStudies returns a snapshot of the in-memory case study collection.
func (s *Syncer) CaseStudies() []models.CaseStudy {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CaseStudy, len(s.caseStudies))
	copy(out, s.caseStudies)
	return out
}

// Categories returns a snapshot of the in-memory category collection.
func (s *Syncer) Categories() []models.ProductCategory {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ProductCategory, len(s.categories))
	copy(out, s.categories)
	return out
}

// Testimonials returns a snapshot of the testimonial collection.
func (s *Syncer) Testimonials() []models.Testimonial {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Testimonial, len(s.testimonials))
	copy(out, s.testimonials)
	return out
}

// BlogPosts returns a snapshot of the blog post collection.
func (s *Syncer) BlogPosts() []models.BlogPost {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.BlogPost, len(s.blogPosts))
	copy(out, s.blogPosts)
	return out
}

// AddCaseStudy appends a case study with a client-generated id and persists
// the snapshot. Zero-valued results get the template set; new records
// default to active.
func (s *Syncer) AddCaseStudy(cs models.CaseStudy) models.CaseStudy {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cs.ID == uuid.Nil {
		cs.ID = uuid.New()
	}
	if cs.Results == (models.ResultSet{}) {
		cs.Results = models.TemplateResultSet()
	}
	cs.IsActive = true
	now := time.Now()
	cs.CreatedAt = now
	cs.UpdatedAt = now

	s.caseStudies = append(s.caseStudies, cs)
	s.persistCaseStudies()
	s.notify(cache.NSCaseStudies)
	return cs
}

// CaseStudyPatch is a field-level update. Nil fields keep existing values;
// scalar fields replace outright while Results deep-merges per metric.
type CaseStudyPatch struct {
	Title             *string                 `json:"title,omitempty"`
	Category          *string                 `json:"category,omitempty"`
	Industry          *string                 `json:"industry,omitempty"`
	Client            *string                 `json:"client,omitempty"`
	Duration          *string                 `json:"duration,omitempty"`
	MonthlySpend      *string                 `json:"monthly_spend,omitempty"`
	Challenge         *string                 `json:"challenge,omitempty"`
	Solution          *string                 `json:"solution,omitempty"`
	Results           *models.ResultSetPatch  `json:"results,omitempty"`
	ImageURL          *string                 `json:"image_url,omitempty"`
	TestimonialQuote  *string                 `json:"testimonial_quote,omitempty"`
	TestimonialAuthor *string                 `json:"testimonial_author,omitempty"`
	TestimonialRole   *string                 `json:"testimonial_role,omitempty"`
	IsActive          *bool                   `json:"is_active,omitempty"`
	Detailed          *models.DetailedContent `json:"detailed,omitempty"`
}

// UpdateCaseStudy applies a patch to the identified case study.
func (s *Syncer) UpdateCaseStudy(id uuid.UUID, patch CaseStudyPatch) (models.CaseStudy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.caseStudies {
		if s.caseStudies[i].ID != id {
			continue
		}
		cs := &s.caseStudies[i]
		applyString(&cs.Title, patch.Title)
		applyString(&cs.Category, patch.Category)
		applyString(&cs.Industry, patch.Industry)
		applyString(&cs.Client, patch.Client)
		applyString(&cs.Duration, patch.Duration)
		applyString(&cs.MonthlySpend, patch.MonthlySpend)
		applyString(&cs.Challenge, patch.Challenge)
		applyString(&cs.Solution, patch.Solution)
		applyString(&cs.ImageURL, patch.ImageURL)
		applyString(&cs.TestimonialQuote, patch.TestimonialQuote)
		applyString(&cs.TestimonialAuthor, patch.TestimonialAuthor)
		applyString(&cs.TestimonialRole, patch.TestimonialRole)
		if patch.IsActive != nil {
			cs.IsActive = *patch.IsActive
		}
		if patch.Results != nil {
			cs.Results = models.MergeResults(cs.Results, *patch.Results)
		}
		if patch.Detailed != nil {
			cs.Detailed = patch.Detailed
		}
		cs.UpdatedAt = time.Now()

		s.persistCaseStudies()
		s.notify(cache.NSCaseStudies)
		return *cs, nil
	}
	return models.CaseStudy{}, fmt.Errorf("case study not found: %s", id)
}

// AddCategory creates a category with a slug deduplicated against the
// existing collection.
func (s *Syncer) AddCategory(name, description string) models.ProductCategory {
	s.mu.Lock()
	defer s.mu.Unlock()

	taken := make(map[string]bool, len(s.categories))
	for _, c := range s.categories {
		taken[c.Slug] = true
	}

	now := time.Now()
	cat := models.ProductCategory{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Slug:        models.UniqueSlug(name, taken),
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.categories = append(s.categories, cat)
	s.persistCategories()
	s.notify(cache.NSCategories)
	return cat
}

// CategoryPatch is a field-level category update.
type CategoryPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// UpdateCategory applies a patch. Renaming re-derives the slug, deduped
// against every other category.
func (s *Syncer) UpdateCategory(id uuid.UUID, patch CategoryPatch) (models.ProductCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.categories {
		if s.categories[i].ID != id {
			continue
		}
		cat := &s.categories[i]
		if patch.Name != nil && *patch.Name != cat.Name {
			cat.Name = *patch.Name
			taken := make(map[string]bool, len(s.categories))
			for j, other := range s.categories {
				if j != i {
					taken[other.Slug] = true
				}
			}
			cat.Slug = models.UniqueSlug(cat.Name, taken)
		}
		applyString(&cat.Description, patch.Description)
		if patch.IsActive != nil {
			cat.IsActive = *patch.IsActive
		}
		cat.UpdatedAt = time.Now()

		s.persistCategories()
		s.notify(cache.NSCategories)
		return *cat, nil
	}
	return models.ProductCategory{}, fmt.Errorf("category not found: %s", id)
}

// AddTestimonial stores a testimonial. Testimonials persist locally only.
func (s *Syncer) AddTestimonial(tm models.Testimonial) models.Testimonial {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tm.ID == uuid.Nil {
		tm.ID = uuid.New()
	}
	tm.IsActive = true
	s.testimonials = append(s.testimonials, tm)
	s.persist(cache.NSTestimonials, s.testimonials)
	s.notify(cache.NSTestimonials)
	return tm
}

// DeleteTestimonial removes a testimonial from local state.
func (s *Syncer) DeleteTestimonial(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.testimonials {
		if s.testimonials[i].ID == id {
			s.testimonials = append(s.testimonials[:i], s.testimonials[i+1:]...)
			s.persist(cache.NSTestimonials, s.testimonials)
			s.notify(cache.NSTestimonials)
			return
		}
	}
}

// AddBlogPost stores a blog post. Blog posts persist locally only.
func (s *Syncer) AddBlogPost(post models.BlogPost) models.BlogPost {
	s.mu.Lock()
	defer s.mu.Unlock()

	if post.ID == uuid.Nil {
		post.ID = uuid.New()
	}
	if post.Slug == "" {
		post.Slug = models.Slugify(post.Title)
	}
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now
	s.blogPosts = append(s.blogPosts, post)
	s.persist(cache.NSBlogPosts, s.blogPosts)
	s.notify(cache.NSBlogPosts)
	return post
}

// DeleteBlogPost removes a blog post from local state.
func (s *Syncer) DeleteBlogPost(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.blogPosts {
		if s.blogPosts[i].ID == id {
			s.blogPosts = append(s.blogPosts[:i], s.blogPosts[i+1:]...)
			s.persist(cache.NSBlogPosts, s.blogPosts)
			s.notify(cache.NSBlogPosts)
			return
		}
	}
}

// ProductExtra returns the local metadata for a catalog product.
func (s *Syncer) ProductExtra(productID string) (models.ProductExtra, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.extras[productID]
	return e, ok
}

// ProductFacets returns the facet assignment for a catalog product.
func (s *Syncer) ProductFacets(productID string) (models.ProductFilterFacets, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.facets[productID]
	return f, ok
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
