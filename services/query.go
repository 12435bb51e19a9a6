package services

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PageSize is the fixed page size of the catalog browsing pages.
const PageSize = 3

// CatalogQuery is the filter/sort/pagination descriptor executed by the
// catalog service against the product store.
type CatalogQuery struct {
	Filter       bson.M
	Sort         bson.D
	Skip         int64
	Limit        int64
	ExcludePhoto bool
}

// BuildCatalogQuery translates request parameters into a CatalogQuery.
// It is a pure function: no I/O, no side effects.
//
//   - checked restricts results to the given category set when non-empty.
//   - radio is an inclusive [min, max] price range, applied only when it
//     has exactly two elements.
//   - keyword matches name or description case-insensitively; it is
//     treated as a literal substring, not a pattern.
//   - page is 1-based; values below 1 are clamped to 1.
func BuildCatalogQuery(checked []primitive.ObjectID, radio []float64, keyword string, page int) CatalogQuery {
	filter := bson.M{}

	if len(checked) > 0 {
		filter["category"] = bson.M{"$in": checked}
	}
	if len(radio) == 2 {
		filter["price"] = bson.M{"$gte": radio[0], "$lte": radio[1]}
	}
	if keyword != "" {
		pattern := regexp.QuoteMeta(keyword)
		filter["$or"] = bson.A{
			bson.M{"name": bson.M{"$regex": pattern, "$options": "i"}},
			bson.M{"description": bson.M{"$regex": pattern, "$options": "i"}},
		}
	}

	if page < 1 {
		page = 1
	}

	return CatalogQuery{
		Filter:       filter,
		Sort:         bson.D{{Key: "createdAt", Value: -1}},
		Skip:         int64(page-1) * PageSize,
		Limit:        PageSize,
		ExcludePhoto: true,
	}
}
