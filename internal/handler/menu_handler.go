package handler

import (
	"net/http"

	"github.com/khendev23/gap-cafe-type/internal/service"
	"github.com/khendev23/gap-cafe-type/pkg/dbrouter"
	"github.com/khendev23/gap-cafe-type/pkg/logger"
)

// MenuHandler serves the catalog, the availability toggle and the
// best-sellers report.
type MenuHandler struct {
	menuService service.MenuServiceInterface
	router      *dbrouter.Router
	logger      *logger.Logger
}

func NewMenuHandler(menuService service.MenuServiceInterface, router *dbrouter.Router, log *logger.Logger) *MenuHandler {
	return &MenuHandler{
		menuService: menuService,
		router:      router,
		logger:      log.WithComponent("menu_handler"),
	}
}

// Menus handles POST /api/menus
func (h *MenuHandler) Menus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IPAddress string `json:"ipAddress"`
	}
	if err := parseBody(r, &req); err != nil {
		h.logger.Warn("Invalid request body for menus", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.IPAddress == "" {
		writeError(w, h.logger, http.StatusBadRequest, "IP address is required")
		return
	}

	target := h.router.Resolve(req.IPAddress)

	items, err := h.menuService.Menus(r.Context(), target)
	if err != nil {
		h.logger.Error("Failed to fetch menus", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to fetch menus")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, items)
}

// UpdateMenuUseYN handles POST /api/menus/updateMenuUseYn
func (h *MenuHandler) UpdateMenuUseYN(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IPAddress string `json:"ipAddress"`
		MenuID    int64  `json:"menuId"`
		UseYN     string `json:"useYN"`
	}
	if err := parseBody(r, &req); err != nil {
		h.logger.Warn("Invalid request body for menu toggle", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.IPAddress == "" {
		writeError(w, h.logger, http.StatusBadRequest, "IP address is required")
		return
	}

	target := h.router.Resolve(req.IPAddress)

	if err := h.menuService.SetAvailability(r.Context(), target, req.MenuID, req.UseYN); err != nil {
		h.logger.Warn("Failed to toggle menu availability", "menu_id", req.MenuID, "error", err)
		status, msg := statusFor(err)
		writeError(w, h.logger, status, msg)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, map[string]interface{}{"success": true})
}

// BestMenus handles POST /api/menus/bestMenus
func (h *MenuHandler) BestMenus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IPAddress string `json:"ipAddress"`
	}
	if err := parseBody(r, &req); err != nil {
		h.logger.Warn("Invalid request body for best menus", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.IPAddress == "" {
		writeError(w, h.logger, http.StatusBadRequest, "IP address is required")
		return
	}

	target := h.router.Resolve(req.IPAddress)

	best, err := h.menuService.BestSellers(r.Context(), target)
	if err != nil {
		h.logger.Error("Failed to fetch best menus", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to fetch best menus")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, best)
}
