package listquery

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/tablemaps/tablemaps-backend/pkg/pagination"
)

// Reserved query keys that never become filters.
var reservedKeys = map[string]bool{
	"select": true,
	"sort":   true,
	"page":   true,
	"limit":  true,
}

var comparisonOps = map[string]string{
	"gt":  ">",
	"gte": ">=",
	"lt":  "<",
	"lte": "<=",
}

// Normalizer rewrites the raw values of one filter field before they are
// bound, typically to drop tokens outside an enumeration. Returning an empty
// slice drops the filter entirely.
type Normalizer func(values []string) []string

// Schema declares which query fields a listing accepts and how they map to
// columns. Fields absent from Columns are dropped silently.
type Schema struct {
	// Columns maps external field names to column names.
	Columns map[string]string
	// ArrayFields marks columns stored as text[] and filtered by overlap.
	ArrayFields map[string]bool
	// Normalizers run per external field before binding.
	Normalizers map[string]Normalizer
	// SearchField is matched as a case-insensitive substring instead of
	// equality.
	SearchField string
	// DefaultSort is used when the request carries no sort key.
	DefaultSort string
}

// Condition is a single WHERE fragment with its bind arguments.
type Condition struct {
	Expr string
	Args []any
}

// Plan is the translated listing: filters, projection, ordering and paging.
type Plan struct {
	Conditions []Condition
	Select     []string
	OrderBy    string
	Page       pagination.Params
}

// Parse translates raw query values into a Plan using the schema.
func Parse(values url.Values, schema Schema) *Plan {
	plan := &Plan{
		OrderBy: schema.DefaultSort,
		Page:    parsePage(values).Normalize(),
	}

	for rawKey := range values {
		field, op := splitKey(rawKey)
		if reservedKeys[field] {
			continue
		}
		column, ok := schema.Columns[field]
		if !ok {
			continue
		}

		vals := collectValues(values[rawKey])
		if norm, ok := schema.Normalizers[field]; ok {
			vals = norm(vals)
		}
		if len(vals) == 0 {
			continue
		}

		if cond := buildCondition(schema, field, column, op, vals); cond != nil {
			plan.Conditions = append(plan.Conditions, *cond)
		}
	}

	plan.Select = parseSelect(values.Get("select"), schema)
	if sort := parseSort(values.Get("sort"), schema); sort != "" {
		plan.OrderBy = sort
	}
	return plan
}

func buildCondition(schema Schema, field, column, op string, vals []string) *Condition {
	if field == schema.SearchField && op == "" {
		pattern := "%" + strings.ToLower(vals[0]) + "%"
		return &Condition{Expr: fmt.Sprintf("LOWER(%s) LIKE ?", column), Args: []any{pattern}}
	}

	if schema.ArrayFields[field] {
		// op is ignored for array columns, both plain and [in] mean overlap
		return &Condition{Expr: fmt.Sprintf("%s && ?", column), Args: []any{pq.Array(vals)}}
	}

	switch {
	case op == "":
		return &Condition{Expr: fmt.Sprintf("%s = ?", column), Args: []any{typedValue(vals[0])}}
	case op == "in":
		args := make([]any, 0, len(vals))
		for _, v := range vals {
			args = append(args, typedValue(v))
		}
		return &Condition{Expr: fmt.Sprintf("%s IN ?", column), Args: []any{args}}
	default:
		sqlOp, ok := comparisonOps[op]
		if !ok {
			return nil
		}
		return &Condition{Expr: fmt.Sprintf("%s %s ?", column, sqlOp), Args: []any{typedValue(vals[0])}}
	}
}

// splitKey separates "price[gt]" into field and operator.
func splitKey(key string) (string, string) {
	open := strings.Index(key, "[")
	if open == -1 || !strings.HasSuffix(key, "]") {
		return key, ""
	}
	return key[:open], key[open+1 : len(key)-1]
}

// collectValues flattens repeated parameters and comma separated lists.
func collectValues(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, entry := range raw {
		for _, part := range strings.Split(entry, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// typedValue converts numeric and boolean literals so Postgres can compare
// them against numeric columns.
func typedValue(raw string) any {
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return raw
}

func parsePage(values url.Values) pagination.Params {
	params := pagination.Params{}
	if v, err := strconv.Atoi(values.Get("page")); err == nil {
		params.Page = v
	}
	if v, err := strconv.Atoi(values.Get("limit")); err == nil {
		params.Limit = v
	}
	return params
}

func parseSelect(raw string, schema Schema) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	cols := []string{"id"}
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		column, ok := schema.Columns[field]
		if !ok || column == "id" {
			continue
		}
		cols = append(cols, column)
	}
	if len(cols) == 1 {
		return nil
	}
	return cols
}

func parseSort(raw string, schema Schema) string {
	parts := []string{}
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		direction := "ASC"
		if strings.HasPrefix(field, "-") {
			direction = "DESC"
			field = field[1:]
		}
		column, ok := schema.Columns[field]
		if !ok {
			continue
		}
		parts = append(parts, column+" "+direction)
	}
	return strings.Join(parts, ", ")
}

// ApplyFilters attaches only the WHERE fragments, used for counting.
func (p *Plan) ApplyFilters(tx *gorm.DB) *gorm.DB {
	for _, cond := range p.Conditions {
		tx = tx.Where(cond.Expr, cond.Args...)
	}
	return tx
}

// Apply attaches filters, projection, ordering and paging for the listing
// query itself.
func (p *Plan) Apply(tx *gorm.DB) *gorm.DB {
	tx = p.ApplyFilters(tx)
	if len(p.Select) > 0 {
		tx = tx.Select(p.Select)
	}
	if p.OrderBy != "" {
		tx = tx.Order(p.OrderBy)
	}
	return tx.Limit(p.Page.Limit).Offset(p.Page.Offset())
}
