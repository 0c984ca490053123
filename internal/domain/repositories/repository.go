package repositories

import (
	"context"

	"github.com/ak/tcs/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductRepository defines operations for product catalog data access
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error // Soft delete (set is_active=false)
	List(ctx context.Context, filter ProductFilter) ([]*models.Product, int64, error)
}

type ProductFilter struct {
	Category   string
	ActiveOnly bool
	Page       int
	Limit      int
}

// TechCardRepository defines operations for tech card data access.
// Ingredient lines are embedded in the card document; line mutations go
// through Update on the whole card.
type TechCardRepository interface {
	Create(ctx context.Context, card *models.TechCard) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.TechCard, error)
	Update(ctx context.Context, card *models.TechCard) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, filter TechCardFilter) ([]*models.TechCard, int64, error)
}

type TechCardFilter struct {
	Category string
	CardType string
	Page     int
	Limit    int
}
