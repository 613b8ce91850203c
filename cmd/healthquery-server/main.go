package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ehr/healthquery/internal/config"
	"github.com/ehr/healthquery/internal/domain/search"
	"github.com/ehr/healthquery/internal/platform/middleware"
	"github.com/ehr/healthquery/internal/platform/nlp"
)

const version = "1.0.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "healthquery-server",
		Short: "Natural-language healthcare query API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(demoCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the healthcare query API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func demoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the example queries end to end and print the results",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.OutOrStdout())
		},
	}
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{"Content-Type", "X-Request-ID"},
	}))

	// Root banner
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"message": "Healthcare Query API is running",
			"version": version,
		})
	})

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": version,
		})
	})

	// Query domain
	interp := nlp.NewInterpreterWithLimit(cfg.DefaultResultLimit)
	svc := search.NewService(search.NewCatalog(), cfg.PoolMinSize, cfg.PoolMaxSize)
	handler := search.NewHandler(interp, svc)
	handler.RegisterRoutes(e.Group("/api"))

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}

// demoQueries are the canonical queries the interactive docs walk through.
var demoQueries = []string{
	"Show me all diabetic patients over 50",
	"Find female patients with hypertension",
	"List male cancer patients between 40 and 60",
	"Show patients with asthma under 30",
	"Find heart disease patients",
}

// runDemo processes each canonical query through the full pipeline and
// prints the extraction, the equivalent FHIR search, a patient sample, and
// summary statistics.
func runDemo(out io.Writer) error {
	w := func(format string, args ...interface{}) {
		fmt.Fprintf(out, format+"\n", args...)
	}

	w(strings.Repeat("=", 80))
	w("HEALTHCARE QUERY SYSTEM - AI ON FHIR")
	w(strings.Repeat("=", 80))

	interp := nlp.NewInterpreter()
	svc := search.NewService(search.NewCatalog(), 20, 50)

	w("\nProcessing %d example queries:\n", len(demoQueries))

	for i, query := range demoQueries {
		w(strings.Repeat("=", 60))
		w("EXAMPLE %d: %s", i+1, query)
		w(strings.Repeat("=", 60))

		spec, explanation := interp.Interpret(query)

		w("\n1. QUERY INTERPRETATION:")
		w("   Input Query: %q", query)
		w("   Explanation: %s", explanation)
		params, err := json.MarshalIndent(spec, "   ", "  ")
		if err != nil {
			return fmt.Errorf("marshal parameters: %w", err)
		}
		w("   Extracted Parameters:")
		w("   %s", params)

		w("\n2. FHIR QUERY TRANSLATION:")
		w("   FHIR Query: %s", translateToFHIRQuery(spec))

		bundle, err := svc.BuildResponse(spec)
		if err != nil {
			return fmt.Errorf("build response for %q: %w", query, err)
		}
		patients := search.FlattenPatients(bundle)
		stats := search.Summarize(bundle)

		w("\n3. FHIR RESPONSE SIMULATION:")
		w("   Total Patients Found: %d", stats.TotalPatients)
		w("   Total Conditions: %d", stats.TotalConditions)

		w("\n   Sample Patients (first 3):")
		for j, p := range patients {
			if j == 3 {
				break
			}
			conditions := "None"
			if len(p.Conditions) > 0 {
				conditions = strings.Join(p.Conditions, ", ")
			}
			w("   Patient %d:", j+1)
			w("     ID: %s", p.ID)
			w("     Name: %s", p.Name)
			w("     Age: %d", p.Age)
			w("     Gender: %s", p.Gender)
			w("     Conditions: %s", conditions)
		}

		w("\n4. SUMMARY STATISTICS:")
		w("   Average Age: %.1f", stats.AverageAge)
		w("   Gender Distribution: %v", stats.GenderDistribution)
		w("   Age Distribution: %v", stats.AgeDistribution)
		if len(stats.ConditionDistribution) > 0 {
			w("   Condition Distribution: %v", stats.ConditionDistribution)
		}

		w("\n   FHIR Bundle Structure:")
		w("   Resource Type: %s", bundle.ResourceType)
		w("   Bundle Type: %s", bundle.Type)
		w("   Total Entries: %d", len(bundle.Entry))
		w("")
	}

	w(strings.Repeat("=", 80))
	w("DEMONSTRATION COMPLETE")
	w(strings.Repeat("=", 80))
	return nil
}

// translateToFHIRQuery renders the filter as the FHIR search it stands in
// for, e.g. GET /Patient?condition=diabetes&gender=female&age=ge50.
func translateToFHIRQuery(spec nlp.FilterSpec) string {
	var parts []string
	for _, cond := range spec.Conditions {
		parts = append(parts, "condition="+strings.ReplaceAll(cond, " ", "-"))
	}
	if spec.Gender != "" {
		parts = append(parts, "gender="+spec.Gender)
	}
	if spec.AgeRange.Min != nil {
		parts = append(parts, fmt.Sprintf("age=ge%d", *spec.AgeRange.Min))
	}
	if spec.AgeRange.Max != nil {
		parts = append(parts, fmt.Sprintf("age=le%d", *spec.AgeRange.Max))
	}
	if len(parts) == 0 {
		return "GET /Patient"
	}
	return "GET /Patient?" + strings.Join(parts, "&")
}
