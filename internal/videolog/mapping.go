package videolog

import (
	"net/url"

	"github.com/sigmacoders/guardian/pkg/query"
	"github.com/sigmacoders/guardian/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "video_logs", "v").
	Project("id", "ID").
	Project("parent_id", "ParentID").
	Project("child_id", "ChildID").
	Project("title", "Title").
	Project("channel", "Channel").
	Project("category", "Category").
	Project("confidence", "Confidence").
	Project("safety", "Safety").
	Project("detected_at", "DetectedAt")

var defaultSort = query.SortField{
	Field:      "DetectedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for video log queries.
// Nil fields are ignored. All fields use exact matching except Title,
// which uses case-insensitive contains matching.
type Filters struct {
	ParentID *string `json:"parent_id,omitempty"`
	ChildID  *string `json:"child_id,omitempty"`
	Title    *string `json:"title,omitempty"`
	Category *string `json:"category,omitempty"`
	Safety   *string `json:"safety,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("ParentID", f.ParentID).
		WhereEquals("ChildID", f.ChildID).
		WhereContains("Title", f.Title).
		WhereEquals("Category", f.Category).
		WhereEquals("Safety", f.Safety)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if p := values.Get("parent_id"); p != "" {
		f.ParentID = &p
	}

	if c := values.Get("child_id"); c != "" {
		f.ChildID = &c
	}

	if t := values.Get("title"); t != "" {
		f.Title = &t
	}

	if cat := values.Get("category"); cat != "" {
		f.Category = &cat
	}

	if s := values.Get("safety"); s != "" {
		f.Safety = &s
	}

	return f
}

func scanEntry(s repository.Scanner) (Entry, error) {
	var e Entry
	err := s.Scan(
		&e.ID,
		&e.ParentID,
		&e.ChildID,
		&e.Title,
		&e.Channel,
		&e.Category,
		&e.Confidence,
		&e.Safety,
		&e.DetectedAt,
	)
	return e, err
}
