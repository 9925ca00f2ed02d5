package cmd

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"travelpro/config"
	"travelpro/handlers"
	"travelpro/services"
	"travelpro/sessions"
)

var (
	configPath string
	portFlag   string
	debugFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "travelpro",
	Short: "Travel planning tools: fares, destinations, itineraries and budgets",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the tool HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if portFlag != "" {
			cfg.HTTP.Port = portFlag
		}
		if debugFlag {
			cfg.Debug = true
		}
		return serve(cfg)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	serveCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to YAML config file")
	serveCmd.Flags().StringVarP(&portFlag, "port", "p", "", "HTTP port (overrides PORT)")
	serveCmd.Flags().BoolVarP(&debugFlag, "debug", "v", false, "Enable debug logs")
	rootCmd.AddCommand(serveCmd)
}

func serve(cfg *config.Config) error {
	services.SetDebug(cfg.Debug)

	if cfg.HTTP.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	rng := services.NewRand(time.Now().UnixNano())

	var quoter services.FareQuoter
	if amadeus := services.NewAmadeusClient(cfg.Amadeus.Client()); amadeus.Configured() {
		quoter = amadeus
		log.Printf("✅ Amadeus client ready (%s)", cfg.Amadeus.BaseURL())
	}

	geocoder := services.NewOpenMeteoGeocoder(cfg.Geocoding.BaseURL, cfg.Geocoding.Language,
		time.Duration(cfg.Geocoding.TimeoutSeconds)*time.Second)
	wiki := services.NewWikipediaClient(cfg.Wikipedia.BaseURL,
		time.Duration(cfg.Wikipedia.TimeoutSeconds)*time.Second)

	h := handlers.New(handlers.Deps{
		Sessions:     sessions.NewStore(),
		Fares:        services.NewFareEstimator(quoter, rng),
		Destinations: services.NewDestinationAggregator(wiki, geocoder),
		Seasons:      services.NewSeasonalAdvisor(geocoder),
		Itineraries:  services.NewItineraryBuilder(rng),
		Language:     cfg.Wikipedia.Language,
	})

	r := handlers.NewRouter(h, cfg.HTTP.FrontendURLs)

	log.Printf("🚀 Travel Pro starting on port %s", cfg.HTTP.Port)
	if err := r.Run(":" + cfg.HTTP.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
