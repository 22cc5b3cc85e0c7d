// Package di provides dependency injection configuration for the WriteFlow server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/writeflowapp/writeflow-server/internal/config"
	"github.com/writeflowapp/writeflow-server/internal/di/providers"
	"github.com/writeflowapp/writeflow-server/internal/logger"
	"github.com/writeflowapp/writeflow-server/internal/service"
	"github.com/writeflowapp/writeflow-server/internal/synthesis"
	"github.com/writeflowapp/writeflow-server/internal/websearch"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Upstream clients
	do.Provide(injector, providers.ProvideCompletionClient)
	do.Provide(injector, providers.ProvideSynthesisEngine)
	do.Provide(injector, providers.ProvideSerperClient)
	do.Provide(injector, providers.ProvideCrossrefClient)

	// Business services
	do.Provide(injector, providers.ProvideContextAssembler)
	do.Provide(injector, providers.ProvideBookService)
	do.Provide(injector, providers.ProvideNoteService)
	do.Provide(injector, providers.ProvideDistillService)
	do.Provide(injector, providers.ProvideChatService)
	do.Provide(injector, providers.ProvideSocialService)
	do.Provide(injector, providers.ProvideNarrativeService)
	do.Provide(injector, providers.ProvideDigestService)
	do.Provide(injector, providers.ProvideResearchService)
	do.Provide(injector, providers.ProvideProfileService)
	do.Provide(injector, providers.ProvideServices)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	// Invoke core services to trigger initialization
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*synthesis.Engine](injector)
	_ = do.MustInvoke[*websearch.SerperClient](injector)
	_ = do.MustInvoke[*websearch.CrossrefClient](injector)

	// Business services
	_ = do.MustInvoke[*service.Services](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
