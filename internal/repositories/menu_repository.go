package repositories

import (
	"context"
	"fmt"

	"github.com/khendev23/gap-cafe-type/models"
	"github.com/khendev23/gap-cafe-type/pkg/dbrouter"
	"github.com/khendev23/gap-cafe-type/pkg/logger"
)

type MenuRepositoryInterface interface {
	GetAll(ctx context.Context, target dbrouter.Target) ([]models.MenuItem, error)
	SetUseYN(ctx context.Context, target dbrouter.Target, menuID int64, useYN string) error
}

type MenuRepository struct {
	router *dbrouter.Router
	logger *logger.Logger
}

func NewMenuRepository(log *logger.Logger, router *dbrouter.Router) *MenuRepository {
	return &MenuRepository{
		router: router,
		logger: log.WithComponent("menu_repository"),
	}
}

// GetAll retrieves the full catalog, available items first, then by id. The
// kiosk greys out unavailable items rather than hiding them.
func (r *MenuRepository) GetAll(ctx context.Context, target dbrouter.Target) ([]models.MenuItem, error) {
	db := r.router.DB(target)

	query := `
        SELECT id, name, category, use_yn, img_url, in_gap_img_url
        FROM menu
        ORDER BY use_yn DESC, id ASC
    `

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to query menu items", "error", err)
		return nil, fmt.Errorf("failed to query menu items: %w", err)
	}
	defer rows.Close()

	items := []models.MenuItem{}
	for rows.Next() {
		var item models.MenuItem
		err := rows.Scan(&item.ID, &item.Name, &item.Category, &item.UseYN, &item.ImgURL, &item.InGapImgURL)
		if err != nil {
			r.logger.Error("Failed to scan menu item", "error", err)
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating menu rows", "error", err)
		return nil, fmt.Errorf("error iterating menu rows: %w", err)
	}

	r.logger.Debug("Retrieved menu items", "count", len(items))
	return items, nil
}

// SetUseYN updates exactly one item's availability flag.
func (r *MenuRepository) SetUseYN(ctx context.Context, target dbrouter.Target, menuID int64, useYN string) error {
	db := r.router.DB(target)

	query := `UPDATE menu SET use_yn = $1 WHERE id = $2`

	result, err := db.ExecContext(ctx, query, useYN, menuID)
	if err != nil {
		r.logger.Error("Failed to update menu availability", "error", err, "menu_id", menuID)
		return fmt.Errorf("failed to update menu availability: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		r.logger.Warn("Attempted to toggle non-existent menu item", "menu_id", menuID)
		return ErrMenuItemNotFound
	}

	r.logger.Info("Menu availability updated", "menu_id", menuID, "use_yn", useYN)
	return nil
}
