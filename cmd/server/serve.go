package main

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mmynk/rentkeeper/internal/auth"
	"github.com/mmynk/rentkeeper/internal/flash"
	"github.com/mmynk/rentkeeper/internal/metrics"
	"github.com/mmynk/rentkeeper/internal/service"
	"github.com/mmynk/rentkeeper/internal/storage/sqlite"
	"github.com/mmynk/rentkeeper/internal/web"
)

func newServeCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server (default)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}

			store, err := sqlite.New(cfg.DBPath)
			if err != nil {
				return err
			}
			defer store.Close()
			slog.Info("Storage initialized", "database", cfg.DBPath)

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			m := metrics.New(reg)

			jwtManager := auth.NewJWTManager(cfg.SecretKey, cfg.SessionTTL)
			authenticator := auth.NewPasswordAuthenticator(store, cfg.BcryptCost)

			srv, err := web.NewServer(web.Deps{
				Houses:       service.NewHouseService(store, m),
				Auth:         service.NewAuthService(authenticator, jwtManager, m, slog.Default()),
				JWT:          jwtManager,
				Owners:       store,
				Health:       store,
				Metrics:      m,
				Gatherer:     reg,
				Flash:        flash.New(cfg.SecretKey),
				CookieSecure: cfg.CookieSecure,
			})
			if err != nil {
				return err
			}

			return srv.ListenAndServe(cmd.Context(), cfg.Addr)
		},
	}
}
