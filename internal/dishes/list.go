package dishes

import (
	"github.com/tablemaps/tablemaps-backend/pkg/enums"
	"github.com/tablemaps/tablemaps-backend/pkg/listquery"
)

// ListSchema declares the queryable surface of the dishes collection.
// External field names follow the public API, columns follow the table.
func ListSchema() listquery.Schema {
	return listquery.Schema{
		Columns: map[string]string{
			"id":             "id",
			"name":           "name",
			"description":    "description",
			"price":          "price",
			"restaurant":     "restaurant_id",
			"isAvailable":    "is_available",
			"availableDate":  "available_date",
			"dietaryOptions": "dietary_options",
			"ingredients":    "ingredients",
			"createdAt":      "created_at",
			"updatedAt":      "updated_at",
		},
		ArrayFields: map[string]bool{
			"dietaryOptions": true,
			"ingredients":    true,
		},
		Normalizers: map[string]listquery.Normalizer{
			"dietaryOptions": enums.FilterDietaryOptions,
		},
		SearchField: "name",
		DefaultSort: "created_at DESC",
	}
}
