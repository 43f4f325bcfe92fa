package providers

import (
	"github.com/samber/do/v2"

	"github.com/palmsoff/binderd/internal/auth"
	"github.com/palmsoff/binderd/internal/catalog/rates"
	"github.com/palmsoff/binderd/internal/config"
	"github.com/palmsoff/binderd/internal/logger"
	"github.com/palmsoff/binderd/internal/service"
)

// ProvideAuthService provides the password gate and token issuance.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	tokens := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(cfg.Auth.Password, tokens, log.Logger)
}

// ProvideCollectionService provides collection management.
func ProvideCollectionService(i do.Injector) (*service.CollectionService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCollectionService(storeHandle.Store, log.Logger), nil
}

// ProvideWishlistService provides the wishlist.
func ProvideWishlistService(i do.Injector) (*service.WishlistService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewWishlistService(storeHandle.Store, log.Logger), nil
}

// ProvideBinderService provides binder placements.
func ProvideBinderService(i do.Injector) (*service.BinderService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewBinderService(storeHandle.Store, log.Logger), nil
}

// ProvideImportService provides the import pipelines.
func ProvideImportService(i do.Injector) (*service.ImportService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	showcase := do.MustInvoke[*ShowcaseClientHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewImportService(storeHandle.Store, showcase.Client, log.Logger), nil
}

// ProvideSearchService provides card database search.
func ProvideSearchService(i do.Injector) (*service.SearchService, error) {
	cards := do.MustInvoke[*CardSearchClientHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSearchService(cards.Client, log.Logger), nil
}

// ProvideStatsService provides the dashboard stats.
func ProvideStatsService(i do.Injector) (*service.StatsService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	ratesClient := do.MustInvoke[*rates.Client](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewStatsService(storeHandle.Store, ratesClient, log.Logger), nil
}
