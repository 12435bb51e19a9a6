package services

import (
	"context"
	"errors"
	"testing"

	"github.com/AnshJain2033/Backend-Ecommerce-App/apperrors"
	"github.com/AnshJain2033/Backend-Ecommerce-App/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeProductStore struct {
	queries []CatalogQuery

	queryResult []models.Product
	queryErr    error

	byID      *models.Product
	byIDErr   error
	bySlug    *models.Product
	bySlugErr error
	byIDs     []models.Product

	insertedID  primitive.ObjectID
	insertErr   error
	inserted    *models.Product
	matched     int64
	updateErr   error
	updated     bson.M
	deleteErr   error
	deletedID   primitive.ObjectID
	countResult int64
}

func (f *fakeProductStore) Query(_ context.Context, q CatalogQuery) ([]models.Product, error) {
	f.queries = append(f.queries, q)
	return f.queryResult, f.queryErr
}

func (f *fakeProductStore) FindByID(_ context.Context, _ primitive.ObjectID, _ bool) (*models.Product, error) {
	return f.byID, f.byIDErr
}

func (f *fakeProductStore) FindByIDs(_ context.Context, _ []primitive.ObjectID) ([]models.Product, error) {
	return f.byIDs, nil
}

func (f *fakeProductStore) FindBySlug(_ context.Context, _ string) (*models.Product, error) {
	return f.bySlug, f.bySlugErr
}

func (f *fakeProductStore) Insert(_ context.Context, p *models.Product) (primitive.ObjectID, error) {
	f.inserted = p
	return f.insertedID, f.insertErr
}

func (f *fakeProductStore) Update(_ context.Context, _ primitive.ObjectID, fields bson.M) (int64, error) {
	f.updated = fields
	return f.matched, f.updateErr
}

func (f *fakeProductStore) Delete(_ context.Context, id primitive.ObjectID) error {
	f.deletedID = id
	return f.deleteErr
}

func (f *fakeProductStore) Count(_ context.Context) (int64, error) {
	return f.countResult, nil
}

type fakeCategoryStore struct {
	byID      map[primitive.ObjectID]*models.Category
	bySlug    *models.Category
	bySlugErr error
	all       []models.Category
	allErr    error

	findByIDCalls int
}

func (f *fakeCategoryStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Category, error) {
	f.findByIDCalls++
	if cat, ok := f.byID[id]; ok {
		return cat, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeCategoryStore) FindBySlug(_ context.Context, _ string) (*models.Category, error) {
	return f.bySlug, f.bySlugErr
}

func (f *fakeCategoryStore) FindAll(_ context.Context) ([]models.Category, error) {
	return f.all, f.allErr
}

func validInput() ProductInput {
	qty := 5
	price := 19.99
	return ProductInput{
		Name:        "Winter Coat",
		Description: "Warm and waterproof",
		Quantity:    &qty,
		Price:       &price,
		CategoryID:  primitive.NewObjectID(),
	}
}

func TestListLimitsAndStripsPhoto(t *testing.T) {
	store := &fakeProductStore{}
	svc := NewCatalogService(store, &fakeCategoryStore{})

	_, err := svc.List(context.Background())
	require.NoError(t, err)

	require.Len(t, store.queries, 1)
	q := store.queries[0]
	assert.Equal(t, int64(ListLimit), q.Limit)
	assert.True(t, q.ExcludePhoto)
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, q.Sort)
}

func TestListAttachesCategories(t *testing.T) {
	catID := primitive.NewObjectID()
	cat := &models.Category{ID: catID, Name: "Coats", Slug: "coats"}
	store := &fakeProductStore{queryResult: []models.Product{
		{Name: "A", CategoryID: catID},
		{Name: "B", CategoryID: catID},
	}}
	cats := &fakeCategoryStore{byID: map[primitive.ObjectID]*models.Category{catID: cat}}
	svc := NewCatalogService(store, cats)

	products, err := svc.List(context.Background())
	require.NoError(t, err)

	require.Len(t, products, 2)
	assert.Equal(t, cat, products[0].Category)
	assert.Equal(t, cat, products[1].Category)
	// Two products, one category: the lookup is cached.
	assert.Equal(t, 1, cats.findByIDCalls)
}

func TestListMissingCategoryLeftNil(t *testing.T) {
	store := &fakeProductStore{queryResult: []models.Product{
		{Name: "Orphan", CategoryID: primitive.NewObjectID()},
	}}
	svc := NewCatalogService(store, &fakeCategoryStore{})

	products, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Nil(t, products[0].Category)
}

func TestPaginateSkip(t *testing.T) {
	store := &fakeProductStore{}
	svc := NewCatalogService(store, &fakeCategoryStore{})

	_, err := svc.Paginate(context.Background(), 2)
	require.NoError(t, err)

	q := store.queries[0]
	assert.Equal(t, int64(3), q.Skip)
	assert.Equal(t, int64(PageSize), q.Limit)
}

func TestFilterIsUnbounded(t *testing.T) {
	store := &fakeProductStore{}
	svc := NewCatalogService(store, &fakeCategoryStore{})

	checked := []primitive.ObjectID{primitive.NewObjectID()}
	_, err := svc.Filter(context.Background(), checked, []float64{10, 50})
	require.NoError(t, err)

	q := store.queries[0]
	assert.Equal(t, int64(0), q.Skip)
	assert.Equal(t, int64(0), q.Limit)
	assert.Contains(t, q.Filter, "category")
	assert.Contains(t, q.Filter, "price")
}

func TestSearchIsUnbounded(t *testing.T) {
	store := &fakeProductStore{}
	svc := NewCatalogService(store, &fakeCategoryStore{})

	_, err := svc.Search(context.Background(), "coat")
	require.NoError(t, err)

	q := store.queries[0]
	assert.Equal(t, int64(0), q.Skip)
	assert.Equal(t, int64(0), q.Limit)
	assert.Contains(t, q.Filter, "$or")
}

func TestRelatedExcludesSelf(t *testing.T) {
	store := &fakeProductStore{}
	svc := NewCatalogService(store, &fakeCategoryStore{})

	pid, cid := primitive.NewObjectID(), primitive.NewObjectID()
	_, err := svc.Related(context.Background(), pid, cid)
	require.NoError(t, err)

	q := store.queries[0]
	assert.Equal(t, cid, q.Filter["category"])
	assert.Equal(t, bson.M{"$ne": pid}, q.Filter["_id"])
	assert.Equal(t, int64(RelatedLimit), q.Limit)
}

func TestByCategorySlugNotFound(t *testing.T) {
	cats := &fakeCategoryStore{bySlugErr: mongo.ErrNoDocuments}
	svc := NewCatalogService(&fakeProductStore{}, cats)

	_, _, err := svc.ByCategorySlug(context.Background(), "nope")
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestGetBySlugNotFound(t *testing.T) {
	store := &fakeProductStore{bySlugErr: mongo.ErrNoDocuments}
	svc := NewCatalogService(store, &fakeCategoryStore{})

	_, err := svc.GetBySlug(context.Background(), "missing")
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestGetPhoto(t *testing.T) {
	store := &fakeProductStore{byID: &models.Product{
		Photo: models.Photo{Data: []byte{0xFF, 0xD8}, ContentType: "image/jpeg"},
	}}
	svc := NewCatalogService(store, &fakeCategoryStore{})

	data, contentType, err := svc.GetPhoto(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0xD8}, data)
	assert.Equal(t, "image/jpeg", contentType)
}

func TestGetPhotoEmpty(t *testing.T) {
	store := &fakeProductStore{byID: &models.Product{}}
	svc := NewCatalogService(store, &fakeCategoryStore{})

	_, _, err := svc.GetPhoto(context.Background(), primitive.NewObjectID())
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestCreateDerivesSlug(t *testing.T) {
	store := &fakeProductStore{insertedID: primitive.NewObjectID()}
	svc := NewCatalogService(store, &fakeCategoryStore{})

	product, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, "winter-coat", product.Slug)
	assert.Equal(t, store.insertedID, product.ID)
}

func TestCreateValidationOrder(t *testing.T) {
	qty := 1
	price := 2.0
	catID := primitive.NewObjectID()

	tests := []struct {
		name    string
		mutate  func(*ProductInput)
		wantMsg string
	}{
		{"missing name", func(in *ProductInput) { in.Name = "" }, "Name is required"},
		{"missing category", func(in *ProductInput) { in.CategoryID = primitive.NilObjectID }, "Category is required"},
		{"missing quantity", func(in *ProductInput) { in.Quantity = nil }, "Quantity is required"},
		{"missing description", func(in *ProductInput) { in.Description = "" }, "Description is required"},
		{"missing price", func(in *ProductInput) { in.Price = nil }, "Price is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeProductStore{}
			svc := NewCatalogService(store, &fakeCategoryStore{})

			in := ProductInput{
				Name:        "X",
				Description: "Y",
				Quantity:    &qty,
				Price:       &price,
				CategoryID:  catID,
			}
			tt.mutate(&in)

			_, err := svc.Create(context.Background(), in)
			require.Error(t, err)
			assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Nil(t, store.inserted, "nothing may be written on a validation failure")
		})
	}
}

func TestCreatePhotoSizeBoundary(t *testing.T) {
	store := &fakeProductStore{insertedID: primitive.NewObjectID()}
	svc := NewCatalogService(store, &fakeCategoryStore{})

	in := validInput()
	in.PhotoData = make([]byte, MaxPhotoBytes)
	_, err := svc.Create(context.Background(), in)
	assert.NoError(t, err, "a photo of exactly the limit is allowed")

	in = validInput()
	in.PhotoData = make([]byte, MaxPhotoBytes+1)
	_, err = svc.Create(context.Background(), in)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestUpdateNotFound(t *testing.T) {
	store := &fakeProductStore{matched: 0}
	svc := NewCatalogService(store, &fakeCategoryStore{})

	_, err := svc.Update(context.Background(), primitive.NewObjectID(), validInput())
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestUpdateRecomputesSlug(t *testing.T) {
	store := &fakeProductStore{matched: 1, byID: &models.Product{Name: "Summer Hat"}}
	svc := NewCatalogService(store, &fakeCategoryStore{})

	in := validInput()
	in.Name = "Summer Hat"
	_, err := svc.Update(context.Background(), primitive.NewObjectID(), in)
	require.NoError(t, err)

	assert.Equal(t, "summer-hat", store.updated["slug"])
}

func TestDeleteMissingIsSuccess(t *testing.T) {
	store := &fakeProductStore{}
	svc := NewCatalogService(store, &fakeCategoryStore{})

	err := svc.Delete(context.Background(), primitive.NewObjectID())
	assert.NoError(t, err)
}

func TestCount(t *testing.T) {
	store := &fakeProductStore{countResult: 42}
	svc := NewCatalogService(store, &fakeCategoryStore{})

	total, err := svc.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), total)
}

func TestStoreErrorsSurfaceAsTransport(t *testing.T) {
	store := &fakeProductStore{queryErr: errors.New("connection reset")}
	svc := NewCatalogService(store, &fakeCategoryStore{})

	_, err := svc.List(context.Background())
	assert.True(t, apperrors.IsKind(err, apperrors.KindTransport))
}
