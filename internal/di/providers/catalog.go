package providers

import (
	"github.com/samber/do/v2"

	"github.com/palmsoff/binderd/internal/catalog/collectr"
	"github.com/palmsoff/binderd/internal/catalog/pokeapi"
	"github.com/palmsoff/binderd/internal/catalog/rates"
	"github.com/palmsoff/binderd/internal/config"
	"github.com/palmsoff/binderd/internal/logger"
)

// ShowcaseClientHandle wraps the showcase client with shutdown capability.
type ShowcaseClientHandle struct {
	*collectr.Client
}

// Shutdown implements do.Shutdownable.
func (h *ShowcaseClientHandle) Shutdown() error {
	h.Close()
	return nil
}

// ProvideShowcaseClient provides the rate-limited Collectr showcase client.
func ProvideShowcaseClient(i do.Injector) (*ShowcaseClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return &ShowcaseClientHandle{
		Client: collectr.New(cfg.Catalog.CollectrProxyURL, log.Logger),
	}, nil
}

// CardSearchClientHandle wraps the card database client with shutdown capability.
type CardSearchClientHandle struct {
	*pokeapi.Client
}

// Shutdown implements do.Shutdownable.
func (h *CardSearchClientHandle) Shutdown() error {
	h.Close()
	return nil
}

// ProvideCardSearchClient provides the public card database client.
func ProvideCardSearchClient(i do.Injector) (*CardSearchClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return &CardSearchClientHandle{
		Client: pokeapi.New(cfg.Catalog.CardSearchURL, log.Logger),
	}, nil
}

// ProvideRatesClient provides the currency rate client.
func ProvideRatesClient(i do.Injector) (*rates.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return rates.New(cfg.Catalog.RatesURL, log.Logger), nil
}
