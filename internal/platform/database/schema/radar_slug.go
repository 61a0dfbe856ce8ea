package schema

// RadarSlugTable represents the 'radar.slug' table
type RadarSlugTable struct {
	Table         string
	ID            string
	Slug          string
	SluggableID   string
	SluggableType string
	Scope         string
	CreatedAt     string
}

// RadarSlug is the schema definition for radar.slug
var RadarSlug = RadarSlugTable{
	Table:         "radar.slug",
	ID:            "id",
	Slug:          "slug",
	SluggableID:   "sluggableid",
	SluggableType: "sluggabletype",
	Scope:         "scope",
	CreatedAt:     "createdat",
}

// SlugTripleKey is the unique index on (slug, sluggabletype, scope).
const SlugTripleKey = "slug_slug_type_scope_key"

// Columns returns all standard column names
func (t RadarSlugTable) Columns() []string {
	return []string{t.ID, t.Slug, t.SluggableID, t.SluggableType, t.Scope, t.CreatedAt}
}
