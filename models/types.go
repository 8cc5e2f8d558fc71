// ABOUTME: Data models for admin-managed site content
// ABOUTME: Defines CaseStudy, ProductCategory, Testimonial, and settings structs
package models

import (
	"time"

	"github.com/google/uuid"
)

// Metric display format constants.
const (
	FormatNumber           = "number"
	FormatCurrency         = "currency"
	FormatPercentage       = "percentage"
	FormatPercentageOnly   = "percentage-only"
	FormatPercentagePoints = "percentage-points"
)

// Testimonial scope constants.
const (
	ScopeTools      = "tools"
	ScopeConsulting = "consulting"
)

type ResultMetric struct {
	Name        string  `json:"name"`
	Before      float64 `json:"before"`
	After       float64 `json:"after"`
	Improvement float64 `json:"improvement"`
	Format      string  `json:"format"`
}

// ResultSet always carries exactly four metric slots.
type ResultSet struct {
	Metric1 ResultMetric `json:"metric1"`
	Metric2 ResultMetric `json:"metric2"`
	Metric3 ResultMetric `json:"metric3"`
	Metric4 ResultMetric `json:"metric4"`
}

type ContentSection struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type CaptionedImage struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

type NamedMetric struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// DetailedContent is the optional long-form block behind a case study page.
type DetailedContent struct {
	HeroImage string           `json:"hero_image,omitempty"`
	Sections  []ContentSection `json:"sections,omitempty"`
	Images    []CaptionedImage `json:"images,omitempty"`
	Metrics   []NamedMetric    `json:"metrics,omitempty"`
}

type CaseStudy struct {
	ID                uuid.UUID        `json:"id"`
	Title             string           `json:"title"`
	Category          string           `json:"category,omitempty"`
	Industry          string           `json:"industry,omitempty"`
	Client            string           `json:"client,omitempty"`
	Duration          string           `json:"duration,omitempty"`
	MonthlySpend      string           `json:"monthly_spend,omitempty"`
	Challenge         string           `json:"challenge,omitempty"`
	Solution          string           `json:"solution,omitempty"`
	Results           ResultSet        `json:"results"`
	ImageURL          string           `json:"image_url,omitempty"`
	TestimonialQuote  string           `json:"testimonial_quote,omitempty"`
	TestimonialAuthor string           `json:"testimonial_author,omitempty"`
	TestimonialRole   string           `json:"testimonial_role,omitempty"`
	IsActive          bool             `json:"is_active"`
	Detailed          *DetailedContent `json:"detailed,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

type ProductCategory struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Slug        string    `json:"slug"`
	IsActive    bool      `json:"is_active"`
	// ProductCount is denormalized for display and never trusted across sync.
	ProductCount int       `json:"product_count,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Testimonial struct {
	ID       uuid.UUID `json:"id"`
	Quote    string    `json:"quote"`
	Author   string    `json:"author"`
	Role     string    `json:"role,omitempty"`
	Company  string    `json:"company,omitempty"`
	PhotoURL string    `json:"photo_url,omitempty"`
	IsActive bool      `json:"is_active"`
	Scope    string    `json:"scope,omitempty"`
}

type BlogPost struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt,omitempty"`
	Body        string     `json:"body,omitempty"`
	CoverImage  string     `json:"cover_image,omitempty"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ProductExtra holds local metadata keyed by the payment catalog's own product id.
type ProductExtra struct {
	ProductID   string      `json:"product_id"`
	Draft       bool        `json:"draft"`
	CategoryIDs []uuid.UUID `json:"category_ids,omitempty"`
	Headline    string      `json:"headline,omitempty"`
	Gallery     []string    `json:"gallery,omitempty"`
	Notes       string      `json:"notes,omitempty"`
}

// ProductFilterFacets drive client-side product filtering.
type ProductFilterFacets struct {
	ProductID   string   `json:"product_id"`
	Platforms   []string `json:"platforms,omitempty"`
	DataBackend string   `json:"data_backend,omitempty"`
	Pricing     string   `json:"pricing,omitempty"`
}

// PageEntry is derived by the page scanner, never stored.
type PageEntry struct {
	Route    string `json:"route"`
	FilePath string `json:"file_path"`
}

type SiteSettings struct {
	Autosave        bool   `json:"autosave"`
	ShowInactive    bool   `json:"show_inactive"`
	EnableAnalytics bool   `json:"enable_analytics"`
	GTMContainer    string `json:"gtm_container"`
}

// DefaultSiteSettings returns the values used whenever no settings row exists.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		Autosave:        true,
		ShowInactive:    true,
		EnableAnalytics: false,
		GTMContainer:    "",
	}
}
