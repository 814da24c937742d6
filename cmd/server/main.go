package main

import (
	"context"
	"log"

	"campaign-migration-platform/internal/config"
	"campaign-migration-platform/internal/container"
	"campaign-migration-platform/internal/server"

	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		container.Module,
		fx.Invoke(func(lc fx.Lifecycle, cfg *config.Config, srv *server.Server) {
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					log.Printf("Starting Campaign Migration Platform on port %s", cfg.Server.Port)

					go func() {
						if err := srv.Start(context.Background()); err != nil {
							log.Printf("Server error: %v", err)
						}
					}()

					return nil
				},
				OnStop: func(ctx context.Context) error {
					log.Println("Shutting down Campaign Migration Platform")
					return srv.Stop()
				},
			})
		}),
	)

	app.Run()
}
