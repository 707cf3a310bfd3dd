package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joblyst/joblyst/internal/embedding/gemini"
	"github.com/joblyst/joblyst/internal/filtering"
	"github.com/joblyst/joblyst/internal/history"
	"github.com/joblyst/joblyst/internal/job"
	"github.com/joblyst/joblyst/internal/logger"
	"github.com/joblyst/joblyst/internal/notify"
	"github.com/joblyst/joblyst/internal/pipeline"
	"github.com/joblyst/joblyst/internal/profile"
	"github.com/joblyst/joblyst/internal/scoring"
	"github.com/joblyst/joblyst/internal/secrets"
	"github.com/joblyst/joblyst/internal/source"
	"github.com/joblyst/joblyst/internal/source/careers"
	"github.com/joblyst/joblyst/internal/source/linkedin"

	"github.com/manifoldco/promptui"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptYes             = "Yes"
	PromptNo              = "No"
	PromptReportByCompany = "Report by company"
	PromptMatchesToFile   = "Dump matches to file"

	dispatchPause = time.Second
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "Send notifications?",
	Items: []string{PromptYes, PromptNo, PromptReportByCompany, PromptMatchesToFile},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the joblyst main command",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("auto-approve", "y", false, "do not ask for confirmation if found matching jobs")
	runCmd.Flags().Bool("dry-run", false, "collect and report matches without notifying or recording them")
	runCmd.Flags().BoolP("watch", "w", false, "keep running on the configured schedule")
	runCmd.Flags().StringP("companies-file", "c", "", "json file with company career pages to watch. Default is unset.")

	viper.BindPFlag("companies-file", runCmd.Flags().Lookup("companies-file"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the joblyst", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil {
		logger.Fatal("config is required")
	}

	p, err := buildPipeline(ctx, cmd, config, logger)
	if err != nil {
		logger.Fatal("building the pipeline", zap.Error(err))
	}

	once := func() {
		if err := runOnce(ctx, cmd, p, logger); err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
	}

	if cmd.Flag("watch").Value.String() != "true" {
		once()
		return
	}

	logger.Info("watch mode", zap.String("schedule", config.Schedule))

	once()

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(config.Schedule, once); err != nil {
		logger.Fatal("parsing the schedule", zap.String("schedule", config.Schedule), zap.Error(err))
	}
	scheduler.Run()
}

// runOnce executes one collect/review/dispatch cycle.
func runOnce(ctx context.Context, cmd *cobra.Command, p *pipeline.Pipeline, logger *zap.Logger) error {
	matches, err := p.Collect(ctx)
	if err != nil {
		return fmt.Errorf("collecting jobs: %w", err)
	}

	if matches.Len() == 0 {
		logger.Info("nothing to send", zap.String("reason", "no matches found"))
		return nil
	}

	if cmd.Flag("dry-run").Value.String() == "true" {
		pretty, _ := json.MarshalIndent(matches.ReportByCompany(), "", "  ")
		logger.Info(string(pretty), zap.Int("matches count", matches.Len()))
		logger.Info("dry run, skipping dispatch")
		return nil
	}

	autoApprove := cmd.Flag("auto-approve").Value.String() == "true"

	action := PromptYes
	for {
		var err error
		if !autoApprove {
			_, action, err = prompt.Run()
			if err != nil {
				return err
			}
		}

		logger.Info("current list of matches", zap.Int("count", matches.Len()))

		if err := handleAction(ctx, action, p, logger, matches); err != nil {
			if errors.Is(err, errExit) {
				return nil
			}
			return err
		}

		if action == PromptYes {
			return nil
		}
	}
}

func handleAction(ctx context.Context, action string, p *pipeline.Pipeline, logger *zap.Logger, matches *pipeline.Matches) error {
	switch action {
	case PromptYes:
		return p.Dispatch(ctx, matches)
	case PromptNo:
		logger.Info("skipping dispatch", zap.String("reason", "got no from prompt"))
		return errExit
	case PromptReportByCompany:
		pretty, _ := json.MarshalIndent(matches.ReportByCompany(), "", "  ")
		logger.Info(string(pretty), zap.Int("matches count", matches.Len()))
		return nil
	case PromptMatchesToFile:
		filename, err := matches.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump matches to file: %w", err)
		}
		logger.Info("dumping matches to file", zap.String("filename", filename))
		return nil
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// buildPipeline wires the profile, sources, scorer and notifier together.
func buildPipeline(ctx context.Context, cmd *cobra.Command, config *Config, logger *zap.Logger) (*pipeline.Pipeline, error) {
	prof, err := profile.Load(config.ProfileFile)
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}

	var embedder scoring.Embedder
	if config.AI != nil && config.AI.Enabled {
		embedder, err = newEmbedder(ctx, config.AI, prof, logger)
		if err != nil {
			return nil, err
		}
	} else {
		logger.Info("semantic scoring disabled, using keywords and boosts only")
	}

	providers, err := buildProviders(config, logger)
	if err != nil {
		return nil, err
	}
	if len(providers) == 0 {
		return nil, errors.New("no sources configured: set search.terms or companies")
	}

	notifier, err := buildNotifier(config, logger)
	if err != nil {
		return nil, err
	}

	store := history.New(config.HistoryFile, config.RetentionDays, logger)
	if cmd.Flag("dry-run").Value.String() == "true" {
		store.ReadOnly = true
	}

	return pipeline.New(
		&pipeline.Config{
			MinScore:      config.MinScore,
			DispatchPause: dispatchPause,
		},
		&pipeline.Deps{
			Store:      store,
			Providers:  providers,
			Normalizer: &job.Normalizer{FallbackLocation: config.DefaultLocation},
			Chain:      filtering.Default(logger, config.AllowedRoles, config.AllowedLocations),
			Scorer:     scoring.New(prof, embedder, config.Synonyms, logger),
			Notifier:   notifier,
			Logger:     logger,
		},
	), nil
}

// newEmbedder builds the gemini client and computes the profile embedding once
// per process. A profile that cannot be embedded makes every semantic score
// meaningless, so this failure is fatal.
func newEmbedder(ctx context.Context, cfg *AIConfig, prof *profile.Profile, logger *zap.Logger) (scoring.Embedder, error) {
	if cfg.Gemini == nil {
		return nil, errors.New("gemini configuration is required when ai is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	client, err := gemini.NewClient(ctx, apiKey, cfg.Gemini.Model)
	if err != nil {
		return nil, fmt.Errorf("building gemini client: %w", err)
	}

	logger.Info("embedding the profile", zap.String("model", client.Model()))

	prof.Embedding, err = client.Embed(ctx, prof.Text)
	if err != nil {
		return nil, fmt.Errorf("embedding the profile: %w", err)
	}

	return client, nil
}

func buildProviders(config *Config, logger *zap.Logger) ([]source.Provider, error) {
	var providers []source.Provider

	if config.Search != nil && len(config.Search.Terms) > 0 {
		providers = append(providers, linkedin.New(config.Search.Terms, config.Search.Locations, logger))
	}

	companies := config.Companies
	if file := strings.TrimSpace(viper.GetString("companies-file")); file != "" {
		extra, err := careers.LoadCompaniesFile(file)
		if err != nil {
			return nil, err
		}
		companies = append(companies, extra...)
	}

	if len(companies) > 0 {
		providers = append(providers, careers.New(
			companies,
			config.AllowedRoles,
			config.DefaultLocation,
			logger,
		))
	}

	return providers, nil
}

func buildNotifier(config *Config, logger *zap.Logger) (notify.Notifier, error) {
	if config.Discord == nil {
		return nil, errors.New("discord configuration is required")
	}

	webhookURL, err := secrets.Load(secrets.Source{
		Name: "discord webhook url",
		File: config.Discord.WebhookFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set discord.webhook-file or DISCORD_WEBHOOK_FILE)", err)
	}

	return notify.NewDiscord(webhookURL, logger), nil
}
