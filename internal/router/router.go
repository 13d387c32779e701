package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/khendev23/gap-cafe-type/internal/handler"
	"github.com/khendev23/gap-cafe-type/pkg/dbrouter"
	"github.com/khendev23/gap-cafe-type/pkg/logger"
)

// New builds the route table. All API endpoints are POST-only with fixed
// paths; the path shapes are the contract the kiosk and back-office pages
// were built against.
func New(orderHandler *handler.OrderHandler, menuHandler *handler.MenuHandler, pools *dbrouter.Router, log *logger.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(log.HTTPMiddleware)

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		if err := pools.DB(dbrouter.TargetPrimary).HealthCheck(); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"degraded"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/orders", orderHandler.SubmitOrder)

		r.Route("/new_orders", func(r chi.Router) {
			r.Post("/orders", orderHandler.OpenOrders)
			r.Post("/complete_order", orderHandler.CompleteOrder)
		})

		r.Route("/menus", func(r chi.Router) {
			r.Post("/", menuHandler.Menus)
			r.Post("/bestMenus", menuHandler.BestMenus)
			r.Post("/updateMenuUseYn", menuHandler.UpdateMenuUseYN)
		})
	})

	return r
}
