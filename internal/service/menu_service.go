package service

import (
	"context"
	"fmt"

	"github.com/khendev23/gap-cafe-type/internal/repositories"
	"github.com/khendev23/gap-cafe-type/models"
	"github.com/khendev23/gap-cafe-type/pkg/dbrouter"
	"github.com/khendev23/gap-cafe-type/pkg/logger"
)

type MenuServiceInterface interface {
	Menus(ctx context.Context, target dbrouter.Target) ([]models.MenuItem, error)
	SetAvailability(ctx context.Context, target dbrouter.Target, menuID int64, useYN string) error
	BestSellers(ctx context.Context, target dbrouter.Target) ([]models.BestMenu, error)
}

type MenuService struct {
	menuRepo  repositories.MenuRepositoryInterface
	orderRepo repositories.OrderRepositoryInterface
	logger    *logger.Logger
}

func NewMenuService(menuRepo repositories.MenuRepositoryInterface, orderRepo repositories.OrderRepositoryInterface, log *logger.Logger) *MenuService {
	return &MenuService{
		menuRepo:  menuRepo,
		orderRepo: orderRepo,
		logger:    log.WithComponent("menu_service"),
	}
}

// Menus returns the full catalog for the kiosk and back-office panels.
func (s *MenuService) Menus(ctx context.Context, target dbrouter.Target) ([]models.MenuItem, error) {
	items, err := s.menuRepo.GetAll(ctx, target)
	if err != nil {
		s.logger.Error("Failed to fetch menus", "error", err)
		return nil, err
	}
	return items, nil
}

// SetAvailability toggles one item's use_yn flag.
func (s *MenuService) SetAvailability(ctx context.Context, target dbrouter.Target, menuID int64, useYN string) error {
	if menuID <= 0 {
		return fmt.Errorf("%w: menuId is invalid", ErrValidation)
	}
	if useYN != models.UseYes && useYN != models.UseNo {
		return fmt.Errorf("%w: useYN must be 'Y' or 'N'", ErrValidation)
	}

	if err := s.menuRepo.SetUseYN(ctx, target, menuID, useYN); err != nil {
		s.logger.Warn("Failed to toggle menu availability", "menu_id", menuID, "error", err)
		return err
	}

	s.logger.Info("Menu availability toggled", "menu_id", menuID, "use_yn", useYN)
	return nil
}

// BestSellers returns the top 3 items by summed ordered quantity. Backed by
// the order detail table, which is why the order repository owns the query.
func (s *MenuService) BestSellers(ctx context.Context, target dbrouter.Target) ([]models.BestMenu, error) {
	best, err := s.orderRepo.BestSellers(ctx, target)
	if err != nil {
		s.logger.Error("Failed to fetch best sellers", "error", err)
		return nil, err
	}
	return best, nil
}
