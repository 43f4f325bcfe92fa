package providers

import (
	"context"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/palmsoff/binderd/internal/api"
	"github.com/palmsoff/binderd/internal/config"
	"github.com/palmsoff/binderd/internal/logger"
	"github.com/palmsoff/binderd/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	services := api.Services{
		Auth:       do.MustInvoke[*service.AuthService](i),
		Collection: do.MustInvoke[*service.CollectionService](i),
		Wishlist:   do.MustInvoke[*service.WishlistService](i),
		Binder:     do.MustInvoke[*service.BinderService](i),
		Import:     do.MustInvoke[*service.ImportService](i),
		Search:     do.MustInvoke[*service.SearchService](i),
		Stats:      do.MustInvoke[*service.StatsService](i),
	}

	handler := api.NewServer(storeHandle.Store, services, cfg.Server.CORSOrigins, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	return &HTTPServerHandle{Server: srv}, nil
}
