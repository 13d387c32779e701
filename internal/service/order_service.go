package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/khendev23/gap-cafe-type/internal/repositories"
	"github.com/khendev23/gap-cafe-type/models"
	"github.com/khendev23/gap-cafe-type/pkg/dbrouter"
	"github.com/khendev23/gap-cafe-type/pkg/logger"
)

// ErrValidation marks request-shape failures that should surface as 400s.
var ErrValidation = errors.New("invalid request")

// SubmitOrderRequest is the kiosk's submission payload.
type SubmitOrderRequest struct {
	IPAddress string          `json:"ipAddress"`
	OrderInfo OrderInfo       `json:"orderInfo"`
	Items     []SubmitCartItem `json:"items"`
}

type OrderInfo struct {
	CustomerName string `json:"customerName"`
}

// SubmitCartItem is one cart line as the kiosk sends it. Options stays raw so
// the detail row keeps the client's serialized option set byte-for-byte; the
// typed view is decoded from it during normalization.
type SubmitCartItem struct {
	ID       int64               `json:"id"`
	Name     string              `json:"name"`
	Category models.MenuCategory `json:"category"`
	Qty      int                 `json:"qty"`
	Options  json.RawMessage     `json:"options"`
}

type OrderServiceInterface interface {
	SubmitOrder(ctx context.Context, target dbrouter.Target, req SubmitOrderRequest) (string, error)
	OpenOrders(ctx context.Context, target dbrouter.Target) ([]models.OpenOrderRow, error)
	CompleteOrder(ctx context.Context, target dbrouter.Target, orderNo string) error
}

type OrderService struct {
	orderRepo repositories.OrderRepositoryInterface
	logger    *logger.Logger
}

func NewOrderService(orderRepo repositories.OrderRepositoryInterface, log *logger.Logger) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		logger:    log.WithComponent("order_service"),
	}
}

// SubmitOrder validates the cart, normalizes each line's option set for its
// category and persists header plus details in one transaction. Returns the
// allocated order number.
func (s *OrderService) SubmitOrder(ctx context.Context, target dbrouter.Target, req SubmitOrderRequest) (string, error) {
	if err := validateCart(req.Items); err != nil {
		s.logger.Warn("Submit failed: invalid cart", "error", err)
		return "", err
	}

	order := &models.Order{
		OrdererName: ordererName(req.OrderInfo.CustomerName),
		Lines:       make([]models.OrderLine, len(req.Items)),
	}
	for i, item := range req.Items {
		line, err := normalizeLine(item)
		if err != nil {
			return "", err
		}
		line.Seq = i + 1
		order.Lines[i] = line
	}

	s.logger.Info("Submitting order",
		"orderer", order.OrdererName,
		"lines", len(order.Lines),
		"target", target.String())

	orderNo, err := s.orderRepo.Submit(ctx, target, order)
	if err != nil {
		s.logger.Error("Failed to submit order", "error", err)
		return "", err
	}

	s.logger.Info("Order submitted", "order_no", orderNo)
	return orderNo, nil
}

// OpenOrders returns the fulfillment feed for the back-office poll.
func (s *OrderService) OpenOrders(ctx context.Context, target dbrouter.Target) ([]models.OpenOrderRow, error) {
	rows, err := s.orderRepo.OpenOrders(ctx, target)
	if err != nil {
		s.logger.Error("Failed to fetch open orders", "error", err)
		return nil, err
	}
	return rows, nil
}

// CompleteOrder marks one order done.
func (s *OrderService) CompleteOrder(ctx context.Context, target dbrouter.Target, orderNo string) error {
	if orderNo == "" {
		return fmt.Errorf("%w: orderNo is required", ErrValidation)
	}

	if err := s.orderRepo.Complete(ctx, target, orderNo); err != nil {
		s.logger.Warn("Failed to complete order", "order_no", orderNo, "error", err)
		return err
	}

	s.logger.Info("Order completed", "order_no", orderNo)
	return nil
}

// ordererName trims the display name and falls back to the placeholder the
// staff screens expect for anonymous customers.
func ordererName(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return models.DefaultOrdererName
	}
	return trimmed
}

func validateCart(items []SubmitCartItem) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: no items to order", ErrValidation)
	}
	for i, item := range items {
		if item.ID <= 0 {
			return fmt.Errorf("%w: item %d: menu id is required", ErrValidation, i+1)
		}
		if !item.Category.Valid() {
			return fmt.Errorf("%w: item %d: unknown category %q", ErrValidation, i+1, item.Category)
		}
		if item.Qty <= 0 {
			return fmt.Errorf("%w: item %d: quantity must be positive", ErrValidation, i+1)
		}
	}
	return nil
}

// normalizeLine maps a cart line's option set into the category-appropriate
// detail columns. Unexpected option combinations or keys are not rejected:
// OptionsJSON keeps the client's bytes untouched, including keys outside the
// known vocabulary, and only the normalized columns are shaped by category.
func normalizeLine(item SubmitCartItem) (models.OrderLine, error) {
	raw := item.Options
	if len(raw) == 0 {
		raw = json.RawMessage(`{}`)
	}

	var opts models.Options
	if err := json.Unmarshal(raw, &opts); err != nil {
		return models.OrderLine{}, fmt.Errorf("%w: malformed options: %v", ErrValidation, err)
	}

	line := models.OrderLine{
		MenuID:      item.ID,
		Category:    item.Category,
		Quantity:    item.Qty,
		OptionsJSON: string(raw),
	}

	if opts.Temp != "" {
		line.Temp = ptr(opts.Temp)
	}
	if opts.Temp == models.TempIce {
		line.IceAmt = ptr(defaulted(opts.Ice, models.LevelNormal))
	}

	switch item.Category {
	case models.CategoryCoffee:
		line.CoffeeShot = ptr(defaulted(opts.CoffeeShot, models.LevelNormal))
	case models.CategoryNonCoffee, models.CategoryAde:
		line.ShotToggle = ptr(defaulted(opts.ShotToggle, models.ShotNone))
		line.Sweetness = ptr(defaulted(opts.Sweetness, models.SweetnessNormal))
	case models.CategoryTea:
		// no category options
	}

	return line, nil
}

func defaulted(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func ptr(s string) *string {
	return &s
}
