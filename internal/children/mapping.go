package children

import (
	"net/url"

	"github.com/sigmacoders/guardian/pkg/query"
	"github.com/sigmacoders/guardian/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "children", "c").
	Project("parent_id", "ParentID").
	Project("child_id", "ChildID").
	Project("name", "Name").
	Project("risk_level", "RiskLevel").
	Project("usage", "Usage").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "UpdatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for child queries.
// Nil fields are ignored. ParentID and RiskLevel use exact matching;
// Name uses case-insensitive contains matching.
type Filters struct {
	ParentID  *string `json:"parent_id,omitempty"`
	Name      *string `json:"name,omitempty"`
	RiskLevel *string `json:"risk_level,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("ParentID", f.ParentID).
		WhereContains("Name", f.Name).
		WhereEquals("RiskLevel", f.RiskLevel)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if p := values.Get("parent_id"); p != "" {
		f.ParentID = &p
	}

	if n := values.Get("name"); n != "" {
		f.Name = &n
	}

	if rl := values.Get("risk_level"); rl != "" {
		f.RiskLevel = &rl
	}

	return f
}

func scanChild(s repository.Scanner) (Child, error) {
	var c Child
	err := s.Scan(
		&c.ParentID,
		&c.ChildID,
		&c.Name,
		&c.RiskLevel,
		&c.Usage,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}
