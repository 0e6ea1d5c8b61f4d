// Copyright 2021-2023
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"sync"
	"syscall"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/penny-vault/purchasing-power/data"
	"github.com/penny-vault/purchasing-power/date"
	"github.com/penny-vault/purchasing-power/handler"
	"github.com/penny-vault/purchasing-power/middleware"
	"github.com/penny-vault/purchasing-power/observability/opentelemetry"
	"github.com/penny-vault/purchasing-power/router"
)

var Profile bool

func init() {
	viper.BindEnv("server.port", "PORT")
	serveCmd.Flags().IntP("port", "p", 3000, "Port to run application server on")
	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))

	serveCmd.Flags().String("refresh", "0 */6 * * *", "Cron schedule of the data refresh")
	viper.BindPFlag("server.refresh", serveCmd.Flags().Lookup("refresh"))

	serveCmd.Flags().String("cors-origins", "*", "Comma separated list of origins allowed to call the API")
	viper.BindPFlag("server.cors_origins", serveCmd.Flags().Lookup("cors-origins"))

	serveCmd.Flags().BoolVar(&Profile, "cpu-profile", false, "Run pprof and save in profile.out")

	rootCmd.AddCommand(serveCmd)
}

// refresher runs at most one refresh at a time and publishes the result
type refresher struct {
	mu      sync.Mutex
	ctx     context.Context
	manager *data.Manager
	store   *data.Store

	// rolling moves the end of the refresh window to the current day
	rolling bool
}

func (r *refresher) run() {
	if !r.mu.TryLock() {
		log.Warn().Msg("previous refresh still running; skipping")
		return
	}
	defer r.mu.Unlock()

	if r.rolling {
		r.manager.End = date.Today()
	}
	snap, err := r.manager.Refresh(r.ctx)
	if err != nil {
		log.Error().Err(err).Msg("refresh failed")
		return
	}

	r.store.Replace(snap)
	log.Info().Str("CycleID", snap.CycleID.String()).Int("NumAssets", len(snap.Series)).Msg("published new snapshot")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the purchasing power API server",
	Long: `Run an HTTP server exposing the most recent price snapshot. Prices are
refreshed on start up and then on the configured cron schedule.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Profile {
			f, err := os.Create("profile.out")
			if err != nil {
				return err
			}
			if err := pprof.StartCPUProfile(f); err != nil {
				return err
			}
			defer pprof.StopCPUProfile()
		}

		spec := viper.GetString("server.refresh")
		if _, err := cron.ParseStandard(spec); err != nil {
			return fmt.Errorf("invalid refresh schedule %q: %w", spec, err)
		}

		shutdownTracing, err := opentelemetry.Setup()
		if err != nil {
			return err
		}
		defer func() {
			if err := shutdownTracing(context.Background()); err != nil {
				log.Error().Err(err).Msg("could not flush traces")
			}
		}()

		manager, err := newManager()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		store := data.NewStore()
		r := &refresher{
			ctx:     ctx,
			manager: manager,
			store:   store,
			rolling: viper.GetString("fetch.end") == "",
		}

		app := fiber.New(fiber.Config{
			JSONEncoder:           json.Marshal,
			JSONDecoder:           json.Unmarshal,
			DisableStartupMessage: true,
		})

		app.Use(cors.New(cors.Config{
			AllowOrigins: viper.GetString("server.cors_origins"),
			AllowMethods: "GET,HEAD",
		}))
		app.Use(middleware.NewLogger())
		router.SetupRoutes(app, handler.New(store))

		scheduler := gocron.NewScheduler(time.UTC)
		if _, err := scheduler.Cron(spec).SingletonMode().Do(r.run); err != nil {
			return fmt.Errorf("could not schedule refresh: %w", err)
		}
		scheduler.StartAsync()
		defer scheduler.Stop()

		go r.run()

		// shutdown cleanly on interrupt
		go func() {
			<-ctx.Done()
			log.Info().Msg("shutting down")
			if err := app.Shutdown(); err != nil {
				log.Error().Err(err).Msg("could not shut down server")
			}
		}()

		port := viper.GetString("server.port")
		log.Info().Str("Port", port).Str("Refresh", spec).Msg("starting server")
		return app.Listen(":" + port)
	},
}
