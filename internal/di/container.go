// Package di provides dependency injection configuration for binderd.
package di

import (
	"github.com/samber/do/v2"

	"github.com/palmsoff/binderd/internal/auth"
	"github.com/palmsoff/binderd/internal/catalog/rates"
	"github.com/palmsoff/binderd/internal/config"
	"github.com/palmsoff/binderd/internal/di/providers"
	"github.com/palmsoff/binderd/internal/logger"
	"github.com/palmsoff/binderd/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideAuthKey)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Catalog clients
	do.Provide(injector, providers.ProvideShowcaseClient)
	do.Provide(injector, providers.ProvideCardSearchClient)
	do.Provide(injector, providers.ProvideRatesClient)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)

	// Business services
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideCollectionService)
	do.Provide(injector, providers.ProvideWishlistService)
	do.Provide(injector, providers.ProvideBinderService)
	do.Provide(injector, providers.ProvideImportService)
	do.Provide(injector, providers.ProvideSearchService)
	do.Provide(injector, providers.ProvideStatsService)

	// Workers
	do.Provide(injector, providers.ProvideImportWatch)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services. This triggers lazy initialization of
// everything the server needs.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.AuthKey](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.ShowcaseClientHandle](injector)
	_ = do.MustInvoke[*providers.CardSearchClientHandle](injector)
	_ = do.MustInvoke[*rates.Client](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)

	// Business services
	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*service.CollectionService](injector)
	_ = do.MustInvoke[*service.WishlistService](injector)
	_ = do.MustInvoke[*service.BinderService](injector)
	_ = do.MustInvoke[*service.ImportService](injector)
	_ = do.MustInvoke[*service.SearchService](injector)
	_ = do.MustInvoke[*service.StatsService](injector)

	// Workers
	_ = do.MustInvoke[*providers.ImportWatchHandle](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
