package store

import (
	"context"
	"fmt"

	"pizza-ordering/internal/models"
)

// CreateOrderTx persists an order header and all of its detail rows in a
// single transaction. Any failure rolls the whole set back: no Order and
// no OrderDetail survives a failed commit.
func (s *Store) CreateOrderTx(ctx context.Context, order *models.Order, details []models.OrderDetail) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (order_id, member_id, bran_id, date, time)
		VALUES ($1, $2, $3, $4, $5)`,
		order.OrderID, order.MemberID, order.BranID, order.Date, order.Time)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for _, d := range details {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_detail (order_detail_id, order_id, pizza_id, quantity)
			VALUES ($1, $2, $3, $4)`,
			d.OrderDetailID, d.OrderID, d.PizzaID, d.Quantity)
		if err != nil {
			return fmt.Errorf("failed to insert order detail: %w", err)
		}
	}

	return tx.Commit()
}

// GetOrderLinesByMemberID retrieves the order lines for a member, newest
// first
func (s *Store) GetOrderLinesByMemberID(ctx context.Context, memberID string) ([]models.OrderLine, error) {
	var lines []models.OrderLine
	err := s.db.SelectContext(ctx, &lines, `
		SELECT o.order_id, d.pizza_id, d.quantity, o.date, o.time
		FROM order_detail d
		JOIN orders o ON o.order_id = d.order_id
		WHERE o.member_id = $1
		ORDER BY o.date DESC, o.time DESC`, memberID)
	return lines, err
}

// GetOrderByID retrieves an order header
func (s *Store) GetOrderByID(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	err := s.db.GetContext(ctx, &order, "SELECT * FROM orders WHERE order_id = $1", orderID)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrderDetailsByOrderID retrieves all detail rows for an order
func (s *Store) GetOrderDetailsByOrderID(ctx context.Context, orderID string) ([]models.OrderDetail, error) {
	var details []models.OrderDetail
	err := s.db.SelectContext(ctx, &details,
		"SELECT * FROM order_detail WHERE order_id = $1", orderID)
	return details, err
}

// GetBranches retrieves all branches
func (s *Store) GetBranches(ctx context.Context) ([]models.Branch, error) {
	var branches []models.Branch
	err := s.db.SelectContext(ctx, &branches, "SELECT * FROM branch ORDER BY bran_id")
	return branches, err
}
