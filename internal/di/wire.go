//go:build wireinject
// +build wireinject

package di

import (
	"VolSentry/pkg/config"
	"VolSentry/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Shared state
		ProvideSettingsStore,
		ProvideSettings,
		ProvideRollingBuffer,
		ProvideAlertEngine,

		// Adapters
		ProvideMarketStream,
		ProvideTelegramClient,
		ProvideNotifier,
		ProvideCommandSource,
		ProvideAlertPublisher,
		ProvideTradeRecorder,

		// Use cases
		ProvideTracker,
		ProvideCollector,
		ProvideCommandProcessor,
		ProvideControlLoop,

		// HTTP surface
		ProvideStatusHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
