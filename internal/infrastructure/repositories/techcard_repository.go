package repositories

import (
	"context"
	"time"

	"github.com/ak/tcs/internal/domain/models"
	"github.com/ak/tcs/internal/domain/repositories"
	"github.com/ak/tcs/internal/infrastructure/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type techCardRepository struct {
	collection *mongo.Collection
}

func NewTechCardRepository(db *database.MongoDB) repositories.TechCardRepository {
	return &techCardRepository{
		collection: db.Collection(database.CollectionTechCards),
	}
}

func (r *techCardRepository) Create(ctx context.Context, card *models.TechCard) error {
	card.CreatedAt = time.Now()
	card.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, card)
	if err != nil {
		return err
	}
	card.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *techCardRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.TechCard, error) {
	var card models.TechCard
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&card)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &card, nil
}

func (r *techCardRepository) Update(ctx context.Context, card *models.TechCard) error {
	card.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": card.ID}, card)
	return err
}

func (r *techCardRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *techCardRepository) List(ctx context.Context, filter repositories.TechCardFilter) ([]*models.TechCard, int64, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.CardType != "" {
		query["card_type"] = filter.CardType
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	page := filter.Page
	limit := filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	skip := (page - 1) * limit

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var cards []*models.TechCard
	if err := cursor.All(ctx, &cards); err != nil {
		return nil, 0, err
	}

	return cards, total, nil
}
