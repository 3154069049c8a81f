package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/veristream/veristream/internal/analyze"
	"github.com/veristream/veristream/internal/cache"
	"github.com/veristream/veristream/internal/extract"
	"github.com/veristream/veristream/internal/factcheck"
	"github.com/veristream/veristream/internal/llm"
	"github.com/veristream/veristream/internal/model"
	"github.com/veristream/veristream/internal/pipeline"
	"github.com/veristream/veristream/internal/research"
	"github.com/veristream/veristream/internal/server"
	"github.com/veristream/veristream/internal/verify"
	"github.com/veristream/veristream/internal/worker"
)

var (
	servePort       int
	serveNoCache    bool
	serveLLMModel   string
	serveLLMBaseURL string
	serveInterval   time.Duration
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the verification backend",
	Long: `Serve starts the HTTP backend the browser extension talks to:

- POST /analyze            stream claim verification for an article (SSE)
- POST /additional-sources find further credible sources for a claim
- POST /research           build a deep-research brief for a claim
- GET  /healthz            liveness

Required environment:
  PERPLEXITY_API_KEY   generative backend key
  FACTCHECK_API_KEY    fact-check database key

Example:
  veristream serve --port 3001`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (overrides config)")
	serveCmd.Flags().BoolVar(&serveNoCache, "no-cache", false, "disable lookup caching")
	serveCmd.Flags().StringVar(&serveLLMModel, "llm-model", "", "generative model name (overrides config)")
	serveCmd.Flags().StringVar(&serveLLMBaseURL, "llm-base-url", "", "generative backend base URL (overrides config)")
	serveCmd.Flags().DurationVar(&serveInterval, "request-interval", 0, "fixed delay between backend calls (overrides config)")
}

func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// Flags override everything
	if servePort != 0 {
		cfg.Server.Port = servePort
	}
	if serveNoCache {
		cfg.Cache.Enabled = false
	}
	if serveLLMModel != "" {
		cfg.LLM.Model = serveLLMModel
	}
	if serveLLMBaseURL != "" {
		cfg.LLM.BaseURL = serveLLMBaseURL
	}
	if serveInterval != 0 {
		cfg.LLM.RequestInterval = serveInterval
	}

	// API keys come from the environment only
	cfg.LLM.APIKey = os.Getenv("PERPLEXITY_API_KEY")
	cfg.FactCheck.APIKey = os.Getenv("FACTCHECK_API_KEY")

	return cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if cfg.LLM.APIKey == "" {
		return fmt.Errorf("PERPLEXITY_API_KEY environment variable not set")
	}
	if cfg.FactCheck.APIKey == "" {
		return fmt.Errorf("FACTCHECK_API_KEY environment variable not set")
	}

	var logger *zap.Logger
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	var lookupCache cache.Cache
	if cfg.Cache.Enabled {
		lookupCache = cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
	}

	provider, err := llm.NewClient(llm.Config{
		APIKey:    cfg.LLM.APIKey,
		BaseURL:   cfg.LLM.BaseURL,
		Model:     cfg.LLM.Model,
		Timeout:   int(cfg.LLM.Timeout.Seconds()),
		MaxTokens: cfg.LLM.MaxTokens,
	})
	if err != nil {
		return fmt.Errorf("init generative backend: %w", err)
	}

	fcClient := factcheck.NewClient(cfg.FactCheck.BaseURL, cfg.FactCheck.APIKey, cfg.FactCheck.Timeout, lookupCache, cfg.Cache.TTL)

	pacer := worker.NewPacer(cfg.LLM.RequestInterval)
	extractor := extract.NewClaimExtractor(provider, cfg.Pipeline.ClaimsMin, cfg.Pipeline.ClaimsMax)
	analyzer := analyze.NewAnalyzer(provider, lookupCache, cfg.Cache.TTL, logger)
	verifier := verify.NewVerifier(fcClient, provider, logger)
	pipe := pipeline.NewPipeline(extractor, analyzer, verifier, pacer, cfg.Pipeline.MinClaimChars, logger)
	coord := pipeline.NewCoordinator()
	researcher := research.NewResearcher(provider, logger)

	srv := server.New(cfg.Server, pipe, coord, researcher, cfg.Pipeline.MinArticleChars, logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting veristream",
		zap.String("model", cfg.LLM.Model),
		zap.Duration("requestInterval", cfg.LLM.RequestInterval),
		zap.Bool("cache", cfg.Cache.Enabled),
	)

	return srv.Run(ctx)
}
