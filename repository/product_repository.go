package repository

import (
	"context"
	"time"

	"github.com/AnshJain2033/Backend-Ecommerce-App/models"
	"github.com/AnshJain2033/Backend-Ecommerce-App/services"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// photoExcluded drops the inline photo payload from list-shaped reads.
var photoExcluded = bson.M{"photo": 0}

type ProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{collection: db.Collection("products")}
}

func (r *ProductRepository) Query(ctx context.Context, q services.CatalogQuery) ([]models.Product, error) {
	findOptions := options.Find()
	if len(q.Sort) > 0 {
		findOptions.SetSort(q.Sort)
	}
	if q.Skip > 0 {
		findOptions.SetSkip(q.Skip)
	}
	if q.Limit > 0 {
		findOptions.SetLimit(q.Limit)
	}
	if q.ExcludePhoto {
		findOptions.SetProjection(photoExcluded)
	}

	filter := q.Filter
	if filter == nil {
		filter = bson.M{}
	}
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID, includePhoto bool) (*models.Product, error) {
	findOptions := options.FindOne()
	if !includePhoto {
		findOptions.SetProjection(photoExcluded)
	}
	var product models.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}, findOptions).Decode(&product)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.Query(ctx, services.CatalogQuery{
		Filter:       bson.M{"_id": bson.M{"$in": ids}},
		ExcludePhoto: true,
	})
}

func (r *ProductRepository) FindBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	err := r.collection.FindOne(ctx, bson.M{"slug": slug},
		options.FindOne().SetProjection(photoExcluded)).Decode(&product)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) Insert(ctx context.Context, product *models.Product) (primitive.ObjectID, error) {
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now
	res, err := r.collection.InsertOne(ctx, product)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (r *ProductRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error) {
	fields["updatedAt"] = time.Now().UTC()
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// Delete removes the document; a missing id is not an error.
func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.EstimatedDocumentCount(ctx)
}
