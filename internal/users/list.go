package users

import "github.com/tablemaps/tablemaps-backend/pkg/listquery"

// ListSchema declares the queryable surface of the users collection.
func ListSchema() listquery.Schema {
	return listquery.Schema{
		Columns: map[string]string{
			"id":        "id",
			"name":      "name",
			"email":     "email",
			"role":      "role",
			"phone":     "phone",
			"address":   "address",
			"createdAt": "created_at",
			"updatedAt": "updated_at",
		},
		SearchField: "name",
		DefaultSort: "created_at DESC",
	}
}
