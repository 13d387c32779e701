package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/khendev23/gap-cafe-type/models"
	"github.com/khendev23/gap-cafe-type/pkg/database"
	"github.com/khendev23/gap-cafe-type/pkg/dbrouter"
	"github.com/khendev23/gap-cafe-type/pkg/logger"
)

// orderNoDateLayout is the date prefix of an order number: YYYYMMDD followed
// by a 3-digit daily sequence.
const orderNoDateLayout = "20060102"

type OrderRepositoryInterface interface {
	Submit(ctx context.Context, target dbrouter.Target, order *models.Order) (string, error)
	OpenOrders(ctx context.Context, target dbrouter.Target) ([]models.OpenOrderRow, error)
	Complete(ctx context.Context, target dbrouter.Target, orderNo string) error
	BestSellers(ctx context.Context, target dbrouter.Target) ([]models.BestMenu, error)
}

type OrderRepository struct {
	router *dbrouter.Router
	logger *logger.Logger
	now    func() time.Time
}

func NewOrderRepository(log *logger.Logger, router *dbrouter.Router) *OrderRepository {
	return &OrderRepository{
		router: router,
		logger: log.WithComponent("order_repository"),
		now:    time.Now,
	}
}

// Submit persists one order header plus its detail lines atomically and
// returns the allocated order number. The allocate-then-insert pattern can
// race with a concurrent submission; the header's primary key is the real
// collision guard, so a unique violation triggers exactly one re-allocation
// before the conflict is surfaced to the caller.
func (r *OrderRepository) Submit(ctx context.Context, target dbrouter.Target, order *models.Order) (string, error) {
	db := r.router.DB(target)

	orderNo, err := r.submitOnce(ctx, db, order)
	if err == nil {
		return orderNo, nil
	}
	if !isUniqueViolation(err) {
		return "", err
	}

	r.logger.Warn("Order number collision, retrying allocation", "error", err)

	orderNo, err = r.submitOnce(ctx, db, order)
	if err == nil {
		return orderNo, nil
	}
	if isUniqueViolation(err) {
		r.logger.Error("Order number collision persisted after retry", "error", err)
		return "", ErrOrderNumberConflict
	}
	return "", err
}

func (r *OrderRepository) submitOnce(ctx context.Context, db *database.DB, order *models.Order) (string, error) {
	orderNo, err := r.allocateOrderNumber(ctx, db)
	if err != nil {
		return "", err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction", "error", err)
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	headerQuery := `
        INSERT INTO gap_order (order_no, orderer_name, bell_num, is_done, ins_date)
        VALUES ($1, $2, NULL, FALSE, NOW())
    `
	if _, err := tx.ExecContext(ctx, headerQuery, orderNo, order.OrdererName); err != nil {
		return "", fmt.Errorf("failed to insert order header: %w", err)
	}

	lineQuery := `
        INSERT INTO gap_order_item
            (order_no, order_seq, menu_id, category, quantity,
             temp, ice_amt, coffee_shot, shot_toggle, sweetness,
             options_json, ins_date)
        VALUES
            ($1, $2, $3, $4, $5,
             $6, $7, $8, $9, $10,
             $11, NOW())
    `
	for i, line := range order.Lines {
		_, err := tx.ExecContext(ctx, lineQuery,
			orderNo, i+1, line.MenuID, line.Category, line.Quantity,
			line.Temp, line.IceAmt, line.CoffeeShot, line.ShotToggle, line.Sweetness,
			line.OptionsJSON)
		if err != nil {
			return "", fmt.Errorf("failed to insert order line %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit order transaction", "error", err, "order_no", orderNo)
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.logger.Info("Order persisted", "order_no", orderNo, "lines", len(order.Lines))
	return orderNo, nil
}

// allocateOrderNumber produces a YYYYMMDD-prefixed daily sequence number by
// reading the day's current maximum. Sequence overflow past 999 is a known
// boundary and is not handled.
func (r *OrderRepository) allocateOrderNumber(ctx context.Context, db *database.DB) (string, error) {
	now := r.now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	query := `
        SELECT MAX(order_no)
        FROM gap_order
        WHERE ins_date >= $1 AND ins_date < $2
    `

	var last sql.NullString
	if err := db.QueryRowContext(ctx, query, startOfDay, startOfDay.AddDate(0, 0, 1)).Scan(&last); err != nil {
		r.logger.Error("Failed to query last order number", "error", err)
		return "", fmt.Errorf("failed to query last order number: %w", err)
	}

	base := now.Format(orderNoDateLayout)
	if !last.Valid || len(last.String) <= len(base) {
		return base + "001", nil
	}

	seq, err := strconv.Atoi(last.String[len(base):])
	if err != nil {
		seq = 0
	}
	return fmt.Sprintf("%s%03d", base, seq+1), nil
}

// OpenOrders returns every incomplete order expanded to one row per detail
// line, joined with the menu catalog, earliest orders first and lines in
// submission order.
func (r *OrderRepository) OpenOrders(ctx context.Context, target dbrouter.Target) ([]models.OpenOrderRow, error) {
	db := r.router.DB(target)

	query := `
        SELECT
            o.order_no,
            o.orderer_name,
            o.is_done,
            o.ins_date AS order_date,
            i.order_seq,
            i.menu_id,
            m.name AS menu_name,
            m.category,
            i.quantity,
            i.temp,
            i.ice_amt,
            i.coffee_shot,
            i.shot_toggle,
            i.sweetness,
            i.ins_date AS item_date
        FROM gap_order o
            JOIN gap_order_item i ON i.order_no = o.order_no
            JOIN menu m ON m.id = i.menu_id
        WHERE o.is_done = FALSE
        ORDER BY o.ins_date ASC, i.order_seq ASC
    `

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to query open orders", "error", err)
		return nil, fmt.Errorf("failed to query open orders: %w", err)
	}
	defer rows.Close()

	feed := []models.OpenOrderRow{}
	for rows.Next() {
		var row models.OpenOrderRow
		err := rows.Scan(
			&row.OrderNo, &row.OrdererName, &row.IsDone, &row.OrderDate,
			&row.OrderSeq, &row.MenuID, &row.MenuName, &row.Category,
			&row.Quantity, &row.Temp, &row.IceAmt, &row.CoffeeShot,
			&row.ShotToggle, &row.Sweetness, &row.ItemDate)
		if err != nil {
			r.logger.Error("Failed to scan open order row", "error", err)
			return nil, fmt.Errorf("failed to scan open order row: %w", err)
		}
		feed = append(feed, row)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating open order rows", "error", err)
		return nil, fmt.Errorf("error iterating open order rows: %w", err)
	}

	r.logger.Debug("Retrieved open orders", "rows", len(feed))
	return feed, nil
}

// Complete flips the completion flag and stamps updated_at. Completing an
// already-completed order succeeds again (the flag simply stays set).
func (r *OrderRepository) Complete(ctx context.Context, target dbrouter.Target, orderNo string) error {
	db := r.router.DB(target)

	query := `UPDATE gap_order SET is_done = TRUE, updated_at = NOW() WHERE order_no = $1`

	result, err := db.ExecContext(ctx, query, orderNo)
	if err != nil {
		r.logger.Error("Failed to complete order", "error", err, "order_no", orderNo)
		return fmt.Errorf("failed to complete order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		r.logger.Warn("Attempted to complete non-existent order", "order_no", orderNo)
		return ErrOrderNotFound
	}

	r.logger.Info("Order completed", "order_no", orderNo)
	return nil
}

// BestSellers returns the top 3 menu items by summed ordered quantity across
// all detail rows, all-time.
func (r *OrderRepository) BestSellers(ctx context.Context, target dbrouter.Target) ([]models.BestMenu, error) {
	db := r.router.DB(target)

	query := `
        SELECT menu_id, SUM(quantity) AS cnt
        FROM gap_order_item
        GROUP BY menu_id
        ORDER BY cnt DESC
        LIMIT 3
    `

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to query best sellers", "error", err)
		return nil, fmt.Errorf("failed to query best sellers: %w", err)
	}
	defer rows.Close()

	best := []models.BestMenu{}
	for rows.Next() {
		var row models.BestMenu
		if err := rows.Scan(&row.MenuID, &row.Count); err != nil {
			r.logger.Error("Failed to scan best seller row", "error", err)
			return nil, fmt.Errorf("failed to scan best seller row: %w", err)
		}
		best = append(best, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating best seller rows: %w", err)
	}

	return best, nil
}
