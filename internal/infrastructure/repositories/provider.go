package repositories

import (
	"github.com/ak/tcs/internal/domain/repositories"
	"github.com/ak/tcs/internal/infrastructure/database"
)

// Provider holds all repository instances
type Provider struct {
	Product  repositories.ProductRepository
	TechCard repositories.TechCardRepository
}

// NewProvider creates a new repository provider
func NewProvider(db *database.MongoDB) *Provider {
	return &Provider{
		Product:  NewProductRepository(db),
		TechCard: NewTechCardRepository(db),
	}
}
