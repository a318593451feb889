package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pizza-ordering/internal/catalogclient"
	"pizza-ordering/internal/models"
	"pizza-ordering/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenVerifier authenticates a bearer token to a member identifier
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// CatalogResolver resolves a (name, size) pair to a catalog identifier
// over a bounded-timeout remote call
type CatalogResolver interface {
	Resolve(ctx context.Context, name, size string) (string, error)
}

// OrderStore is the transactional persistence boundary for orders
type OrderStore interface {
	CreateOrderTx(ctx context.Context, order *models.Order, details []models.OrderDetail) error
	GetOrderLinesByMemberID(ctx context.Context, memberID string) ([]models.OrderLine, error)
	GetBranches(ctx context.Context) ([]models.Branch, error)
}

// OrderService orchestrates order creation: authenticate, validate,
// resolve every line against the catalog service, then commit the whole
// order in one transaction. Any failure before or during the commit
// leaves nothing persisted.
type OrderService struct {
	store    OrderStore
	verifier TokenVerifier
	catalog  CatalogResolver
	logger   *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(store OrderStore, verifier TokenVerifier, catalog CatalogResolver) *OrderService {
	return &OrderService{
		store:    store,
		verifier: verifier,
		catalog:  catalog,
		logger:   util.GetLogger(),
	}
}

// PlaceOrderRequest represents a request to place an order
type PlaceOrderRequest struct {
	BranchID string             `json:"branchId" binding:"required"`
	Lines    []OrderLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// OrderLineRequest represents one requested line
type OrderLineRequest struct {
	Name     string `json:"name" binding:"required"`
	Size     string `json:"size" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

// PlaceOrderResponse represents the response after placing an order
type PlaceOrderResponse struct {
	OrderID string `json:"order_id"`
}

type resolvedLine struct {
	pizzaID  string
	quantity int
}

// PlaceOrder runs the order-creation sequence. Resolution completes for
// every line before the transaction opens, so the commit never spans a
// remote call and a catalog failure never leaves a half-written order.
func (s *OrderService) PlaceOrder(ctx context.Context, bearerToken string, req *PlaceOrderRequest) (*PlaceOrderResponse, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.PlaceOrder")
	defer span.End()

	memberID, err := s.authenticate(bearerToken)
	if err != nil {
		util.OrdersRejectedTotal.WithLabelValues("unauthorized").Inc()
		return nil, err
	}

	if err := s.validate(req); err != nil {
		util.OrdersRejectedTotal.WithLabelValues("invalid_payload").Inc()
		return nil, err
	}

	resolved, err := s.resolveLines(ctx, req.Lines)
	if err != nil {
		return nil, err
	}

	orderID, err := s.commit(ctx, memberID, req.BranchID, resolved)
	if err != nil {
		util.OrdersRejectedTotal.WithLabelValues("db_error").Inc()
		return nil, err
	}

	util.OrdersPlacedTotal.Inc()
	s.logger.Info("Order placed",
		zap.String("order_id", orderID),
		zap.String("member_id", memberID),
		zap.Int("lines", len(resolved)))

	return &PlaceOrderResponse{OrderID: orderID}, nil
}

func (s *OrderService) authenticate(bearerToken string) (string, error) {
	if bearerToken == "" {
		return "", ErrUnauthorized
	}
	memberID, err := s.verifier.Verify(bearerToken)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	return memberID, nil
}

func (s *OrderService) validate(req *PlaceOrderRequest) error {
	if req.BranchID == "" {
		return fmt.Errorf("%w: missing branch", ErrInvalidOrder)
	}
	if len(req.Lines) == 0 {
		return fmt.Errorf("%w: empty lines", ErrInvalidOrder)
	}
	for i, line := range req.Lines {
		if line.Name == "" || line.Size == "" {
			return fmt.Errorf("%w: line %d missing name or size", ErrInvalidOrder, i)
		}
		if line.Quantity <= 0 {
			return fmt.Errorf("%w: line %d has non-positive quantity", ErrInvalidOrder, i)
		}
	}
	return nil
}

// resolveLines resolves each line in submitted order. The first failure
// aborts the whole request; no partial results are kept.
func (s *OrderService) resolveLines(ctx context.Context, lines []OrderLineRequest) ([]resolvedLine, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.resolveLines")
	defer span.End()

	resolved := make([]resolvedLine, 0, len(lines))
	for _, line := range lines {
		pizzaID, err := s.catalog.Resolve(ctx, line.Name, line.Size)
		if err != nil {
			var lookupErr *catalogclient.LookupError
			if errors.As(err, &lookupErr) && lookupErr.Unavailable {
				util.OrdersRejectedTotal.WithLabelValues("catalog_unavailable").Inc()
				return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
			}
			util.OrdersRejectedTotal.WithLabelValues("lookup_failed").Inc()
			return nil, fmt.Errorf("%w: no pizza found for %s %s", ErrPizzaNotFound, line.Size, line.Name)
		}
		resolved = append(resolved, resolvedLine{pizzaID: pizzaID, quantity: line.Quantity})
	}
	return resolved, nil
}

// commit writes the order header and all detail rows in one transaction.
// Identifiers are random UUIDs, so concurrent requests cannot collide.
func (s *OrderService) commit(ctx context.Context, memberID, branchID string, resolved []resolvedLine) (string, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.commit")
	defer span.End()

	now := time.Now()
	order := &models.Order{
		OrderID:  uuid.NewString(),
		MemberID: memberID,
		BranID:   branchID,
		Date:     now.Format("2006-01-02"),
		Time:     now.Format("15:04:05"),
	}

	details := make([]models.OrderDetail, 0, len(resolved))
	for _, line := range resolved {
		details = append(details, models.OrderDetail{
			OrderDetailID: uuid.NewString(),
			OrderID:       order.OrderID,
			PizzaID:       line.pizzaID,
			Quantity:      line.quantity,
		})
	}

	if err := s.store.CreateOrderTx(ctx, order, details); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return order.OrderID, nil
}

// MyOrders lists the order lines of the authenticated member
func (s *OrderService) MyOrders(ctx context.Context, bearerToken string) ([]models.OrderLine, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.MyOrders")
	defer span.End()

	memberID, err := s.authenticate(bearerToken)
	if err != nil {
		return nil, err
	}

	lines, err := s.store.GetOrderLinesByMemberID(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return lines, nil
}

// Branches lists all branches
func (s *OrderService) Branches(ctx context.Context) ([]models.Branch, error) {
	branches, err := s.store.GetBranches(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	return branches, nil
}
