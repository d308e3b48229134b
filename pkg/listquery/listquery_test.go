package listquery

import (
	"net/url"
	"testing"

	"github.com/tablemaps/tablemaps-backend/pkg/enums"
	"github.com/tablemaps/tablemaps-backend/pkg/pagination"
)

func dishSchema() Schema {
	return Schema{
		Columns: map[string]string{
			"id":             "id",
			"name":           "name",
			"price":          "price",
			"isAvailable":    "is_available",
			"dietaryOptions": "dietary_options",
			"createdAt":      "created_at",
		},
		ArrayFields: map[string]bool{"dietaryOptions": true},
		Normalizers: map[string]Normalizer{"dietaryOptions": enums.FilterDietaryOptions},
		SearchField: "name",
		DefaultSort: "created_at DESC",
	}
}

func mustParseQuery(t *testing.T, raw string) url.Values {
	t.Helper()
	values, err := url.ParseQuery(raw)
	if err != nil {
		t.Fatalf("parse query %q: %v", raw, err)
	}
	return values
}

func TestParseNameBecomesSubstringMatch(t *testing.T) {
	plan := Parse(mustParseQuery(t, "name=Piz"), dishSchema())
	if len(plan.Conditions) != 1 {
		t.Fatalf("expected 1 condition, got %d", len(plan.Conditions))
	}
	cond := plan.Conditions[0]
	if cond.Expr != "LOWER(name) LIKE ?" {
		t.Fatalf("unexpected expr %q", cond.Expr)
	}
	if cond.Args[0] != "%piz%" {
		t.Fatalf("unexpected arg %v", cond.Args[0])
	}
}

func TestParseComparisonOperators(t *testing.T) {
	plan := Parse(mustParseQuery(t, "price[gte]=10&price[lt]=20"), dishSchema())
	if len(plan.Conditions) != 2 {
		t.Fatalf("expected 2 conditions, got %d", len(plan.Conditions))
	}
	seen := map[string]bool{}
	for _, cond := range plan.Conditions {
		seen[cond.Expr] = true
	}
	if !seen["price >= ?"] || !seen["price < ?"] {
		t.Fatalf("missing comparison exprs: %v", seen)
	}
}

func TestParseNumericValuesAreTyped(t *testing.T) {
	plan := Parse(mustParseQuery(t, "price[gt]=12.5"), dishSchema())
	if got, ok := plan.Conditions[0].Args[0].(float64); !ok || got != 12.5 {
		t.Fatalf("expected float arg, got %#v", plan.Conditions[0].Args[0])
	}

	plan = Parse(mustParseQuery(t, "isAvailable=true"), dishSchema())
	if got, ok := plan.Conditions[0].Args[0].(bool); !ok || !got {
		t.Fatalf("expected bool arg, got %#v", plan.Conditions[0].Args[0])
	}
}

func TestParseDietaryOptionsNormalization(t *testing.T) {
	// repeated params and CSV collapse into one overlap filter
	plan := Parse(mustParseQuery(t, "dietaryOptions=vegan,vegetarian&dietaryOptions=halal"), dishSchema())
	if len(plan.Conditions) != 1 {
		t.Fatalf("expected 1 condition, got %d", len(plan.Conditions))
	}
	if plan.Conditions[0].Expr != "dietary_options && ?" {
		t.Fatalf("unexpected expr %q", plan.Conditions[0].Expr)
	}

	// all-invalid tokens drop the filter rather than matching nothing
	plan = Parse(mustParseQuery(t, "dietaryOptions=carnivore,fruitarian"), dishSchema())
	if len(plan.Conditions) != 0 {
		t.Fatalf("expected invalid tokens to drop the filter, got %d conditions", len(plan.Conditions))
	}

	// mixed input keeps only the valid tokens
	plan = Parse(mustParseQuery(t, "dietaryOptions=vegan,carnivore"), dishSchema())
	if len(plan.Conditions) != 1 {
		t.Fatalf("expected 1 condition, got %d", len(plan.Conditions))
	}
}

func TestParseUnknownFieldsDropped(t *testing.T) {
	plan := Parse(mustParseQuery(t, "secretColumn=1&password[gt]=x"), dishSchema())
	if len(plan.Conditions) != 0 {
		t.Fatalf("unknown fields must be dropped, got %d conditions", len(plan.Conditions))
	}
}

func TestParseReservedKeysNeverFilter(t *testing.T) {
	plan := Parse(mustParseQuery(t, "select=name,price&sort=-price&page=2&limit=10"), dishSchema())
	if len(plan.Conditions) != 0 {
		t.Fatalf("reserved keys must not filter, got %d conditions", len(plan.Conditions))
	}
	if plan.OrderBy != "price DESC" {
		t.Fatalf("unexpected order %q", plan.OrderBy)
	}
	if plan.Page.Page != 2 || plan.Page.Limit != 10 {
		t.Fatalf("unexpected page %+v", plan.Page)
	}
	want := []string{"id", "name", "price"}
	if len(plan.Select) != len(want) {
		t.Fatalf("unexpected select %v", plan.Select)
	}
	for i, col := range want {
		if plan.Select[i] != col {
			t.Fatalf("unexpected select %v", plan.Select)
		}
	}
}

func TestParseSortFallsBackToDefault(t *testing.T) {
	plan := Parse(mustParseQuery(t, "sort=notAColumn"), dishSchema())
	if plan.OrderBy != "created_at DESC" {
		t.Fatalf("expected default sort, got %q", plan.OrderBy)
	}

	plan = Parse(mustParseQuery(t, ""), dishSchema())
	if plan.OrderBy != "created_at DESC" {
		t.Fatalf("expected default sort, got %q", plan.OrderBy)
	}
}

func TestParseSortMultipleKeys(t *testing.T) {
	plan := Parse(mustParseQuery(t, "sort=price,-createdAt"), dishSchema())
	if plan.OrderBy != "price ASC, created_at DESC" {
		t.Fatalf("unexpected order %q", plan.OrderBy)
	}
}

func TestParsePageDefaults(t *testing.T) {
	plan := Parse(mustParseQuery(t, ""), dishSchema())
	want := pagination.Params{Page: 1, Limit: 25}
	if plan.Page != want {
		t.Fatalf("expected defaults %+v, got %+v", want, plan.Page)
	}

	plan = Parse(mustParseQuery(t, "page=0&limit=5000"), dishSchema())
	if plan.Page.Page != 1 || plan.Page.Limit != pagination.MaxLimit {
		t.Fatalf("expected clamped page params, got %+v", plan.Page)
	}
}

func TestParseInOperatorOnScalar(t *testing.T) {
	plan := Parse(mustParseQuery(t, "price[in]=10,20,30"), dishSchema())
	if len(plan.Conditions) != 1 {
		t.Fatalf("expected 1 condition, got %d", len(plan.Conditions))
	}
	if plan.Conditions[0].Expr != "price IN ?" {
		t.Fatalf("unexpected expr %q", plan.Conditions[0].Expr)
	}
	values, ok := plan.Conditions[0].Args[0].([]any)
	if !ok || len(values) != 3 {
		t.Fatalf("unexpected args %#v", plan.Conditions[0].Args)
	}
}
