package restaurants

import (
	"github.com/tablemaps/tablemaps-backend/pkg/listquery"
)

// ListSchema declares the queryable surface of the restaurants collection.
// External field names follow the public API, columns follow the table.
func ListSchema() listquery.Schema {
	return listquery.Schema{
		Columns: map[string]string{
			"id":        "id",
			"name":      "name",
			"address":   "address",
			"phone":     "phone",
			"email":     "email",
			"cuisine":   "cuisine",
			"owner":     "owner",
			"createdAt": "created_at",
			"updatedAt": "updated_at",
		},
		ArrayFields: map[string]bool{"cuisine": true},
		SearchField: "name",
		DefaultSort: "created_at DESC",
	}
}
