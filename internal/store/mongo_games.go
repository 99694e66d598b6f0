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

// MongoGames handles game CRUD in the games collection.
type MongoGames struct {
	col *mongo.Collection
}

func NewMongoGames(db *mongo.Database) *MongoGames {
	return &MongoGames{col: db.Collection("games")}
}

func (s *MongoGames) Insert(ctx context.Context, g *models.Game) (*models.Game, error) {
	g.ID = primitive.NewObjectID()
	if _, err := s.col.InsertOne(ctx, g); err != nil {
		return nil, fmt.Errorf("mongo insert game: %w", err)
	}
	return g, nil
}

func (s *MongoGames) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Game, error) {
	var g models.Game
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (s *MongoGames) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	n, err := s.col.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *MongoGames) List(ctx context.Context) ([]models.Game, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var games []models.Game
	if err := cur.All(ctx, &games); err != nil {
		return nil, err
	}
	return games, nil
}

func (s *MongoGames) Replace(ctx context.Context, id primitive.ObjectID, g *models.Game) (*models.Game, error) {
	g.ID = id
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": id}, g)
	if err != nil {
		return nil, fmt.Errorf("mongo replace game: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return g, nil
}

func (s *MongoGames) Delete(ctx context.Context, id primitive.ObjectID) (*models.Game, error) {
	var g models.Game
	if err := s.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &g, nil
}
