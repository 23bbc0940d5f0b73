package query_test

import (
	"strings"
	"testing"

	"github.com/sigmacoders/guardian/pkg/query"
)

func testProjection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "video_logs", "v").
		Project("id", "ID").
		Project("title", "Title").
		Project("detected_at", "DetectedAt")
}

func ptr(s string) *string { return &s }

func TestProjectionMapFrom(t *testing.T) {
	p := testProjection()
	if got := p.From(); got != "public.video_logs v" {
		t.Errorf("From() = %q, want %q", got, "public.video_logs v")
	}
}

func TestProjectionMapAlias(t *testing.T) {
	p := testProjection()
	if got := p.Alias(); got != "v" {
		t.Errorf("Alias() = %q, want %q", got, "v")
	}
}

func TestProjectionMapColumns(t *testing.T) {
	p := testProjection()
	want := "v.id, v.title, v.detected_at"
	if got := p.Columns(); got != want {
		t.Errorf("Columns() = %q, want %q", got, want)
	}
}

func TestProjectionMapColumnLookup(t *testing.T) {
	p := testProjection()

	tests := []struct {
		name     string
		viewName string
		want     string
	}{
		{"mapped field", "Title", "v.title"},
		{"mapped timestamp", "DetectedAt", "v.detected_at"},
		{"unmapped passthrough", "mystery", "mystery"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Column(tt.viewName); got != tt.want {
				t.Errorf("Column(%q) = %q, want %q", tt.viewName, got, tt.want)
			}
		})
	}
}

func TestParseSortFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []query.SortField
	}{
		{"empty string", "", nil},
		{"single ascending", "title", []query.SortField{{Field: "title"}}},
		{"single descending", "-detectedAt", []query.SortField{{Field: "detectedAt", Descending: true}}},
		{
			"multiple mixed",
			"title,-detectedAt",
			[]query.SortField{{Field: "title"}, {Field: "detectedAt", Descending: true}},
		},
		{
			"spaces and empty parts",
			" title ,, -detectedAt ",
			[]query.SortField{{Field: "title"}, {Field: "detectedAt", Descending: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := query.ParseSortFields(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("ParseSortFields(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ParseSortFields(%q)[%d] = %v, want %v", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBuilderBuild(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).Build()

	want := "SELECT v.id, v.title, v.detected_at FROM public.video_logs v"
	if sql != want {
		t.Errorf("Build() = %q, want %q", sql, want)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want empty", args)
	}
}

func TestBuilderConditionsNumberParameters(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).
		WhereEquals("ID", ptr("abc")).
		WhereContains("Title", ptr("minecraft")).
		Build()

	if !strings.Contains(sql, "WHERE v.id = $1 AND v.title ILIKE $2") {
		t.Errorf("unexpected WHERE clause in %q", sql)
	}
	if len(args) != 2 {
		t.Fatalf("args = %v, want 2 values", args)
	}
	if args[1] != "%minecraft%" {
		t.Errorf("args[1] = %v, want %%minecraft%%", args[1])
	}
}

func TestBuilderNilConditionsAreNoOps(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).
		WhereEquals("ID", (*string)(nil)).
		WhereContains("Title", nil).
		WhereContains("Title", ptr("")).
		WhereSearch(nil, "Title").
		Build()

	if strings.Contains(sql, "WHERE") {
		t.Errorf("expected no WHERE clause, got %q", sql)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want empty", args)
	}
}

func TestBuilderWhereSearch(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).
		WhereSearch(ptr("fails"), "Title", "ID").
		Build()

	if !strings.Contains(sql, "WHERE (v.title ILIKE $1 OR v.id ILIKE $2)") {
		t.Errorf("unexpected search clause in %q", sql)
	}
	if len(args) != 2 || args[0] != "%fails%" || args[1] != "%fails%" {
		t.Errorf("args = %v, want two %%fails%% patterns", args)
	}
}

func TestBuilderBuildCount(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).
		WhereEquals("Title", ptr("exact")).
		BuildCount()

	want := "SELECT COUNT(*) FROM public.video_logs v WHERE v.title = $1"
	if sql != want {
		t.Errorf("BuildCount() = %q, want %q", sql, want)
	}
	if len(args) != 1 {
		t.Errorf("args = %v, want 1 value", args)
	}
}

func TestBuilderBuildPage(t *testing.T) {
	sql, _ := query.NewBuilder(testProjection()).BuildPage(3, 10)

	if !strings.HasSuffix(sql, "LIMIT 10 OFFSET 20") {
		t.Errorf("BuildPage() = %q, want LIMIT 10 OFFSET 20 suffix", sql)
	}
}

func TestBuilderBuildSingle(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).BuildSingle("ID", "abc-123")

	want := "SELECT v.id, v.title, v.detected_at FROM public.video_logs v WHERE v.id = $1"
	if sql != want {
		t.Errorf("BuildSingle() = %q, want %q", sql, want)
	}
	if len(args) != 1 || args[0] != "abc-123" {
		t.Errorf("args = %v, want [abc-123]", args)
	}
}

func TestBuilderOrdering(t *testing.T) {
	defaultSort := query.SortField{Field: "DetectedAt", Descending: true}

	t.Run("default sort applied", func(t *testing.T) {
		sql, _ := query.NewBuilder(testProjection(), defaultSort).Build()
		if !strings.HasSuffix(sql, "ORDER BY v.detected_at DESC") {
			t.Errorf("unexpected order by in %q", sql)
		}
	})

	t.Run("explicit sort overrides default", func(t *testing.T) {
		sql, _ := query.NewBuilder(testProjection(), defaultSort).
			OrderByFields([]query.SortField{{Field: "Title"}}).
			Build()
		if !strings.HasSuffix(sql, "ORDER BY v.title ASC") {
			t.Errorf("unexpected order by in %q", sql)
		}
	})
}
