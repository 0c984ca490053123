package services

import (
	"context"

	"github.com/ak/tcs/internal/domain/models"
	"github.com/ak/tcs/internal/domain/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes. GetByID mirrors the mongo repositories:
// a missing document returns (nil, nil), never an error.

type mockProductRepo struct {
	products map[primitive.ObjectID]*models.Product
	err      error
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{products: make(map[primitive.ObjectID]*models.Product)}
}

func (m *mockProductRepo) put(p *models.Product) *models.Product {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	m.products[p.ID] = p
	return p
}

func (m *mockProductRepo) Create(ctx context.Context, product *models.Product) error {
	if m.err != nil {
		return m.err
	}
	m.put(product)
	return nil
}

func (m *mockProductRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.products[id], nil
}

func (m *mockProductRepo) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*models.Product
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockProductRepo) Update(ctx context.Context, product *models.Product) error {
	if m.err != nil {
		return m.err
	}
	m.products[product.ID] = product
	return nil
}

func (m *mockProductRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if m.err != nil {
		return m.err
	}
	if p, ok := m.products[id]; ok {
		p.IsActive = false
	}
	return nil
}

func (m *mockProductRepo) List(ctx context.Context, filter repositories.ProductFilter) ([]*models.Product, int64, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	var out []*models.Product
	for _, p := range m.products {
		if filter.ActiveOnly && !p.IsActive {
			continue
		}
		if filter.Category != "" && string(p.Category) != filter.Category {
			continue
		}
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

type mockTechCardRepo struct {
	cards   map[primitive.ObjectID]*models.TechCard
	updates int
	err     error
}

func newMockTechCardRepo() *mockTechCardRepo {
	return &mockTechCardRepo{cards: make(map[primitive.ObjectID]*models.TechCard)}
}

func (m *mockTechCardRepo) put(card *models.TechCard) *models.TechCard {
	if card.ID.IsZero() {
		card.ID = primitive.NewObjectID()
	}
	m.cards[card.ID] = card
	return card
}

func (m *mockTechCardRepo) Create(ctx context.Context, card *models.TechCard) error {
	if m.err != nil {
		return m.err
	}
	m.put(card)
	return nil
}

func (m *mockTechCardRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.TechCard, error) {
	if m.err != nil {
		return nil, m.err
	}
	card, ok := m.cards[id]
	if !ok {
		return nil, nil
	}
	// Hand back a copy so tests can detect unsaved mutations.
	clone := *card
	clone.Ingredients = append([]models.TechCardIngredient(nil), card.Ingredients...)
	return &clone, nil
}

func (m *mockTechCardRepo) Update(ctx context.Context, card *models.TechCard) error {
	if m.err != nil {
		return m.err
	}
	m.updates++
	m.cards[card.ID] = card
	return nil
}

func (m *mockTechCardRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if m.err != nil {
		return m.err
	}
	delete(m.cards, id)
	return nil
}

func (m *mockTechCardRepo) List(ctx context.Context, filter repositories.TechCardFilter) ([]*models.TechCard, int64, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	var out []*models.TechCard
	for _, card := range m.cards {
		if filter.CardType != "" && string(card.CardType) != filter.CardType {
			continue
		}
		if filter.Category != "" && card.Category != filter.Category {
			continue
		}
		out = append(out, card)
	}
	return out, int64(len(out)), nil
}
