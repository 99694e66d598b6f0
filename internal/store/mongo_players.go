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

// MongoPlayers handles player CRUD in the players collection.
type MongoPlayers struct {
	col *mongo.Collection
}

func NewMongoPlayers(db *mongo.Database) *MongoPlayers {
	return &MongoPlayers{col: db.Collection("players")}
}

func (s *MongoPlayers) Insert(ctx context.Context, p *models.Player) (*models.Player, error) {
	p.ID = primitive.NewObjectID()
	if _, err := s.col.InsertOne(ctx, p); err != nil {
		return nil, fmt.Errorf("mongo insert player: %w", err)
	}
	return p, nil
}

func (s *MongoPlayers) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Player, error) {
	var p models.Player
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *MongoPlayers) FindByEmail(ctx context.Context, email string) (*models.Player, error) {
	var p models.Player
	if err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *MongoPlayers) List(ctx context.Context) ([]models.Player, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var players []models.Player
	if err := cur.All(ctx, &players); err != nil {
		return nil, err
	}
	return players, nil
}

func (s *MongoPlayers) Replace(ctx context.Context, id primitive.ObjectID, p *models.Player) (*models.Player, error) {
	p.ID = id
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": id}, p)
	if err != nil {
		return nil, fmt.Errorf("mongo replace player: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *MongoPlayers) Delete(ctx context.Context, id primitive.ObjectID) (*models.Player, error) {
	var p models.Player
	if err := s.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}
