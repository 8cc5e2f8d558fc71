// ABOUTME: Remote table definitions for self-hosted deployments
// ABOUTME: Hosted environments manage these tables themselves; InitSchema is idempotent
package store

import "context"

const schema = `
CREATE TABLE IF NOT EXISTS case_studies (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	category TEXT,
	industry TEXT,
	client TEXT,
	duration TEXT,
	monthly_spend TEXT,
	challenge TEXT,
	solution TEXT,
	results JSONB,
	image_url TEXT,
	testimonial_quote TEXT,
	testimonial_author TEXT,
	testimonial_role TEXT,
	is_active BOOLEAN,
	detailed JSONB,
	created_at TIMESTAMPTZ,
	updated_at TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS categories (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT,
	slug TEXT,
	is_active BOOLEAN,
	product_count INTEGER,
	created_at TIMESTAMPTZ,
	updated_at TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS testimonials (
	id TEXT PRIMARY KEY,
	quote TEXT NOT NULL,
	author TEXT,
	role TEXT,
	company TEXT,
	photo_url TEXT,
	is_active BOOLEAN,
	scope TEXT
);

CREATE TABLE IF NOT EXISTS blog_posts (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	slug TEXT,
	excerpt TEXT,
	body TEXT,
	cover_image TEXT,
	published BOOLEAN,
	published_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ,
	updated_at TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS product_extras (
	product_id TEXT PRIMARY KEY,
	payload JSONB
);

CREATE TABLE IF NOT EXISTS product_facets (
	product_id TEXT PRIMARY KEY,
	payload JSONB
);

CREATE TABLE IF NOT EXISTS site_settings (
	id TEXT PRIMARY KEY,
	autosave BOOLEAN,
	show_inactive BOOLEAN,
	enable_analytics BOOLEAN,
	gtm_container TEXT,
	updated_at TIMESTAMPTZ
);
`

// InitSchema creates the remote tables when they do not exist yet.
func (p *Postgres) InitSchema(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, schema); err != nil {
		return remoteErr(err)
	}
	return nil
}
