package store

import (
	"context"
	"database/sql"
	"errors"

	"pizza-ordering/internal/models"
)

// ErrPizzaNotFound is returned when no pizza matches the name and size
var ErrPizzaNotFound = errors.New("pizza not found")

// GetMenu retrieves the full menu joined with pizza types
func (s *Store) GetMenu(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := s.db.SelectContext(ctx, &items, `
		SELECT p.pizza_id, t.pizza_nm, p.size, p.price
		FROM pizza p
		JOIN pizza_types t ON t.pizza_type_id = p.pizza_type_id
		ORDER BY t.pizza_nm, p.size`)
	return items, err
}

// GetPizzaTypes retrieves all pizza types
func (s *Store) GetPizzaTypes(ctx context.Context) ([]models.PizzaType, error) {
	var types []models.PizzaType
	err := s.db.SelectContext(ctx, &types, "SELECT * FROM pizza_types ORDER BY pizza_type_id")
	return types, err
}

// GetPizzaID resolves a (name, size) pair to the catalog identifier.
// The pair resolves to at most one row.
func (s *Store) GetPizzaID(ctx context.Context, name, size string) (string, error) {
	var pizzaID string
	err := s.db.GetContext(ctx, &pizzaID, `
		SELECT p.pizza_id
		FROM pizza p
		JOIN pizza_types t ON t.pizza_type_id = p.pizza_type_id
		WHERE t.pizza_nm = $1 AND p.size = $2`, name, size)
	if err == sql.ErrNoRows {
		return "", ErrPizzaNotFound
	}
	if err != nil {
		return "", err
	}
	return pizzaID, nil
}
