package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rogalski/gamedex/internal/models"
)

// developerSortFields maps the sortable API fields to their bson keys.
// Anything else falls back to name.
var developerSortFields = map[string]string{
	"name":             "name",
	"country":          "country",
	"dateOfSubmission": "dateOfSubmission",
}

// MongoDevelopers handles developer CRUD in the developers collection.
type MongoDevelopers struct {
	col *mongo.Collection
}

func NewMongoDevelopers(db *mongo.Database) *MongoDevelopers {
	return &MongoDevelopers{col: db.Collection("developers")}
}

func (s *MongoDevelopers) Insert(ctx context.Context, d *models.Developer) (*models.Developer, error) {
	d.ID = primitive.NewObjectID()
	if _, err := s.col.InsertOne(ctx, d); err != nil {
		return nil, fmt.Errorf("mongo insert developer: %w", err)
	}
	return d, nil
}

func (s *MongoDevelopers) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Developer, error) {
	var d models.Developer
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (s *MongoDevelopers) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	n, err := s.col.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *MongoDevelopers) List(ctx context.Context, sortField string) ([]models.Developer, error) {
	key, ok := developerSortFields[sortField]
	if !ok {
		key = "name"
	}
	opts := options.Find().SetSort(bson.D{{Key: key, Value: 1}})
	cur, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var developers []models.Developer
	if err := cur.All(ctx, &developers); err != nil {
		return nil, err
	}
	return developers, nil
}

func (s *MongoDevelopers) Replace(ctx context.Context, id primitive.ObjectID, d *models.Developer) (*models.Developer, error) {
	d.ID = id
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": id}, d)
	if err != nil {
		return nil, fmt.Errorf("mongo replace developer: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return d, nil
}

func (s *MongoDevelopers) Delete(ctx context.Context, id primitive.ObjectID) (*models.Developer, error) {
	var d models.Developer
	if err := s.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}
