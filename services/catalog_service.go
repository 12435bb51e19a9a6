package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/AnshJain2033/Backend-Ecommerce-App/apperrors"
	"github.com/AnshJain2033/Backend-Ecommerce-App/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	// ListLimit bounds the default newest-first product listing.
	ListLimit = 12
	// RelatedLimit bounds the related-products lookup.
	RelatedLimit = 3
	// MaxPhotoBytes is the upper bound on an inline product photo.
	MaxPhotoBytes = 1_000_000
)

// ProductStore is the product collection surface the catalog service needs.
type ProductStore interface {
	Query(ctx context.Context, q CatalogQuery) ([]models.Product, error)
	FindByID(ctx context.Context, id primitive.ObjectID, includePhoto bool) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error)
	FindBySlug(ctx context.Context, slug string) (*models.Product, error)
	Insert(ctx context.Context, p *models.Product) (primitive.ObjectID, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

// CategoryStore is the read-only category collection surface.
type CategoryStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	FindBySlug(ctx context.Context, slug string) (*models.Category, error)
	FindAll(ctx context.Context) ([]models.Category, error)
}

// ProductInput carries the validated fields of a create or update request.
// Quantity and Price are pointers so a missing value can be told apart from
// a zero one.
type ProductInput struct {
	Name        string
	Description string
	Quantity    *int
	Price       *float64
	CategoryID  primitive.ObjectID
	Shipping    *bool
	PhotoData   []byte
	PhotoType   string
}

type CatalogService struct {
	products   ProductStore
	categories CategoryStore
}

func NewCatalogService(products ProductStore, categories CategoryStore) *CatalogService {
	return &CatalogService{products: products, categories: categories}
}

// List returns the newest products, photo omitted, category populated.
func (s *CatalogService) List(ctx context.Context) ([]models.Product, error) {
	q := CatalogQuery{
		Filter:       bson.M{},
		Sort:         bson.D{{Key: "createdAt", Value: -1}},
		Limit:        ListLimit,
		ExcludePhoto: true,
	}
	products, err := s.products.Query(ctx, q)
	if err != nil {
		return nil, apperrors.Transport("failed to fetch products", err)
	}
	if err := s.attachCategories(ctx, products); err != nil {
		return nil, err
	}
	return products, nil
}

// Paginate returns one fixed-size page of the newest-first ordering.
func (s *CatalogService) Paginate(ctx context.Context, page int) ([]models.Product, error) {
	q := BuildCatalogQuery(nil, nil, "", page)
	products, err := s.products.Query(ctx, q)
	if err != nil {
		return nil, apperrors.Transport("failed to fetch products", err)
	}
	return products, nil
}

// Filter returns every product matching the category set and price range.
// Unlike Paginate it is unbounded: an empty filter returns the whole catalog.
func (s *CatalogService) Filter(ctx context.Context, checked []primitive.ObjectID, radio []float64) ([]models.Product, error) {
	q := BuildCatalogQuery(checked, radio, "", 1)
	q.Skip, q.Limit = 0, 0
	products, err := s.products.Query(ctx, q)
	if err != nil {
		return nil, apperrors.Transport("failed to filter products", err)
	}
	return products, nil
}

// Search returns every product whose name or description contains the
// keyword, case-insensitively.
func (s *CatalogService) Search(ctx context.Context, keyword string) ([]models.Product, error) {
	q := BuildCatalogQuery(nil, nil, keyword, 1)
	q.Skip, q.Limit = 0, 0
	products, err := s.products.Query(ctx, q)
	if err != nil {
		return nil, apperrors.Transport("failed to search products", err)
	}
	return products, nil
}

// Count returns the total number of products.
func (s *CatalogService) Count(ctx context.Context) (int64, error) {
	total, err := s.products.Count(ctx)
	if err != nil {
		return 0, apperrors.Transport("failed to count products", err)
	}
	return total, nil
}

// Related returns up to RelatedLimit products sharing the given category,
// never including the product itself.
func (s *CatalogService) Related(ctx context.Context, productID, categoryID primitive.ObjectID) ([]models.Product, error) {
	q := CatalogQuery{
		Filter: bson.M{
			"category": categoryID,
			"_id":      bson.M{"$ne": productID},
		},
		Sort:         bson.D{{Key: "createdAt", Value: -1}},
		Limit:        RelatedLimit,
		ExcludePhoto: true,
	}
	products, err := s.products.Query(ctx, q)
	if err != nil {
		return nil, apperrors.Transport("failed to fetch related products", err)
	}
	if err := s.attachCategories(ctx, products); err != nil {
		return nil, err
	}
	return products, nil
}

// ByCategorySlug resolves a category by slug and returns it together with
// its products.
func (s *CatalogService) ByCategorySlug(ctx context.Context, slug string) (*models.Category, []models.Product, error) {
	category, err := s.categories.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil, apperrors.NotFound("category not found")
		}
		return nil, nil, apperrors.Transport("failed to fetch category", err)
	}
	q := CatalogQuery{
		Filter:       bson.M{"category": category.ID},
		Sort:         bson.D{{Key: "createdAt", Value: -1}},
		ExcludePhoto: true,
	}
	products, err := s.products.Query(ctx, q)
	if err != nil {
		return nil, nil, apperrors.Transport("failed to fetch products", err)
	}
	for i := range products {
		products[i].Category = category
	}
	return category, products, nil
}

// Categories lists every category.
func (s *CatalogService) Categories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Transport("failed to fetch categories", err)
	}
	return categories, nil
}

// GetBySlug returns a single product, photo omitted, category populated.
func (s *CatalogService) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	product, err := s.products.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("product not found")
		}
		return nil, apperrors.Transport("failed to fetch product", err)
	}
	products := []models.Product{*product}
	if err := s.attachCategories(ctx, products); err != nil {
		return nil, err
	}
	return &products[0], nil
}

// GetPhoto returns the raw photo payload and its content type.
func (s *CatalogService) GetPhoto(ctx context.Context, id primitive.ObjectID) ([]byte, string, error) {
	product, err := s.products.FindByID(ctx, id, true)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, "", apperrors.NotFound("product not found")
		}
		return nil, "", apperrors.Transport("failed to fetch product", err)
	}
	if len(product.Photo.Data) == 0 {
		return nil, "", apperrors.NotFound("product has no stored photo")
	}
	return product.Photo.Data, product.Photo.ContentType, nil
}

// Create validates the input and inserts a new product. The slug is derived
// from the name. Nothing is written when validation fails.
func (s *CatalogService) Create(ctx context.Context, in ProductInput) (*models.Product, error) {
	if err := validateProductInput(in); err != nil {
		return nil, err
	}
	product := &models.Product{
		Name:        in.Name,
		Slug:        Slugify(in.Name),
		Description: in.Description,
		Quantity:    *in.Quantity,
		Price:       *in.Price,
		CategoryID:  in.CategoryID,
		Shipping:    in.Shipping,
	}
	if len(in.PhotoData) > 0 {
		product.Photo = models.Photo{Data: in.PhotoData, ContentType: in.PhotoType}
	}
	id, err := s.products.Insert(ctx, product)
	if err != nil {
		return nil, apperrors.Transport("failed to create product", err)
	}
	product.ID = id
	return product, nil
}

// Update replaces the product's fields, recomputing the slug from the name.
// It fails with a not-found error when the id resolves to nothing.
func (s *CatalogService) Update(ctx context.Context, id primitive.ObjectID, in ProductInput) (*models.Product, error) {
	if err := validateProductInput(in); err != nil {
		return nil, err
	}
	fields := bson.M{
		"name":        in.Name,
		"slug":        Slugify(in.Name),
		"description": in.Description,
		"quantity":    *in.Quantity,
		"price":       *in.Price,
		"category":    in.CategoryID,
	}
	if in.Shipping != nil {
		fields["shipping"] = *in.Shipping
	}
	if len(in.PhotoData) > 0 {
		fields["photo"] = models.Photo{Data: in.PhotoData, ContentType: in.PhotoType}
	}
	matched, err := s.products.Update(ctx, id, fields)
	if err != nil {
		return nil, apperrors.Transport("failed to update product", err)
	}
	if matched == 0 {
		return nil, apperrors.NotFound("product not found")
	}
	product, err := s.products.FindByID(ctx, id, false)
	if err != nil {
		return nil, apperrors.Transport("failed to fetch updated product", err)
	}
	return product, nil
}

// Delete removes a product. Deleting an id that is already gone is still a
// success: the end state is the same.
func (s *CatalogService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return apperrors.Transport("failed to delete product", err)
	}
	return nil
}

func validateProductInput(in ProductInput) error {
	switch {
	case in.Name == "":
		return apperrors.Validation("Name is required")
	case in.CategoryID.IsZero():
		return apperrors.Validation("Category is required")
	case in.Quantity == nil:
		return apperrors.Validation("Quantity is required")
	case in.Description == "":
		return apperrors.Validation("Description is required")
	case in.Price == nil:
		return apperrors.Validation("Price is required")
	case *in.Quantity < 0:
		return apperrors.Validation("Quantity must not be negative")
	case *in.Price < 0:
		return apperrors.Validation("Price must not be negative")
	case len(in.PhotoData) > MaxPhotoBytes:
		return apperrors.Validation(fmt.Sprintf("Photo should be less than %d bytes", MaxPhotoBytes))
	}
	return nil
}

// attachCategories populates the Category field of each product. A category
// that no longer resolves is left nil rather than failing the read.
func (s *CatalogService) attachCategories(ctx context.Context, products []models.Product) error {
	cache := make(map[primitive.ObjectID]*models.Category)
	for i := range products {
		id := products[i].CategoryID
		if id.IsZero() {
			continue
		}
		if cat, ok := cache[id]; ok {
			products[i].Category = cat
			continue
		}
		cat, err := s.categories.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				cache[id] = nil
				continue
			}
			return apperrors.Transport("failed to fetch category", err)
		}
		cache[id] = cat
		products[i].Category = cat
	}
	return nil
}
