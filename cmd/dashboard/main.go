package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/propedge/propedge/internal/api"
	"github.com/propedge/propedge/internal/models"
	"github.com/propedge/propedge/internal/pipeline"
	"github.com/propedge/propedge/internal/providers"
	"github.com/propedge/propedge/internal/render"
	"github.com/propedge/propedge/internal/rosters"
	"github.com/propedge/propedge/internal/scoring"
	"github.com/propedge/propedge/internal/services"
	"github.com/propedge/propedge/pkg/config"
)

func main() {
	leagueFlag := flag.String("league", "", "comma-separated leagues to run (default from config)")
	outFlag := flag.String("out", "", "output file path (default from config)")
	serveFlag := flag.Bool("serve", false, "serve the dashboard over HTTP and refresh on schedule")
	daemonFlag := flag.Bool("daemon", false, "keep running and regenerate on schedule")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	if cfg.OddsAPIKey == "" {
		logrus.Fatal("ODDS_API_KEY is required")
	}
	if *leagueFlag != "" {
		cfg.Leagues = strings.Split(*leagueFlag, ",")
	}
	if *outFlag != "" {
		cfg.OutputPath = *outFlag
	}

	// Setup logging
	logger := logrus.New()
	if cfg.IsDevelopment() {
		logger.SetLevel(logrus.DebugLevel)
		gin.SetMode(gin.DebugMode)
	} else {
		logger.SetLevel(logrus.InfoLevel)
		gin.SetMode(gin.ReleaseMode)
	}

	leagues, err := cfg.ParsedLeagues()
	if err != nil {
		logger.Fatalf("Invalid league configuration: %v", err)
	}

	profiles, err := scoring.LoadProfiles(cfg.ProfilesPath)
	if err != nil {
		logger.Fatalf("Failed to load player profiles: %v", err)
	}

	// Wire the run dependencies
	dayStore := services.NewDayStore(cfg.RedisURL, cfg.CacheDir, logger)
	espnClient := providers.NewESPNClient(cfg.RequestDelay, cfg.HTTPTimeout, logger)
	oddsClient := providers.NewOddsAPIClient(cfg.OddsAPIKey, cfg.RequestDelay, cfg.HTTPTimeout, logger)
	rosterBuilder := rosters.NewBuilder(espnClient, dayStore, logger)
	engine := scoring.NewEngine(profiles)
	pipe := pipeline.New(oddsClient, rosterBuilder, engine, cfg.TopN, cfg.MinEdge, logger)

	renderer, err := render.NewRenderer(logger)
	if err != nil {
		logger.Fatalf("Failed to initialize renderer: %v", err)
	}

	resultStore := services.NewResultStore()

	runOnce := func(ctx context.Context) error {
		var sections []render.Section
		results := make(map[models.League]services.LeagueResult, len(leagues))
		for _, league := range leagues {
			picks, diag := pipe.Run(ctx, league)
			sections = append(sections, render.Section{
				League:      league,
				Picks:       picks,
				Diagnostics: diag,
			})
			results[league] = services.LeagueResult{Picks: picks, Diagnostics: diag}
		}

		page, err := renderer.Render(time.Now(), sections)
		if err != nil {
			return err
		}
		resultStore.Publish(page, results)
		return renderer.WriteFile(cfg.OutputPath, page)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if !*serveFlag && !*daemonFlag {
		if err := runOnce(ctx); err != nil {
			logger.Fatalf("Run failed: %v", err)
		}
		return
	}

	scheduled := func() {
		if err := runOnce(ctx); err != nil {
			logger.Errorf("Scheduled run failed: %v", err)
		}
	}
	scheduler := services.NewScheduler(cfg.Schedule, scheduled, logger)
	if err := scheduler.Start(); err != nil {
		logger.Fatalf("Failed to start scheduler: %v", err)
	}
	defer scheduler.Stop()

	if !*serveFlag {
		<-ctx.Done()
		logger.Info("Shutting down")
		return
	}

	// Serve mode: dashboard and pick API over HTTP, refreshed on schedule
	router := api.NewRouter(resultStore, logger)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}
	logger.Info("Server exited")
}
