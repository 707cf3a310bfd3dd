package cmd

import (
	"log"

	"github.com/joblyst/joblyst/internal/scoring"
	"github.com/joblyst/joblyst/internal/source/careers"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "joblyst"
)

type Config struct {
	AllowedRoles     []string                `mapstructure:"allowed-roles"`
	AllowedLocations []string                `mapstructure:"allowed-locations"`
	MinScore         int                     `mapstructure:"min-score"`
	RetentionDays    int                     `mapstructure:"retention-days"`
	DefaultLocation  string                  `mapstructure:"default-location"`
	HistoryFile      string                  `mapstructure:"history-file"`
	ProfileFile      string                  `mapstructure:"profile-file"`
	Schedule         string                  `mapstructure:"schedule"`
	Search           *SearchConfig           `mapstructure:"search"`
	Companies        []careers.Company       `mapstructure:"companies"`
	Discord          *DiscordConfig          `mapstructure:"discord"`
	AI               *AIConfig               `mapstructure:"ai"`
	Synonyms         []scoring.SynonymFamily `mapstructure:"synonyms"`
}

type SearchConfig struct {
	Terms     []string `mapstructure:"terms"`
	Locations []string `mapstructure:"locations"`
}

type DiscordConfig struct {
	WebhookFile string `mapstructure:"webhook-file"`
}

type AIConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Gemini  *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "joblyst is a cli that scrapes job postings, scores them against your profile and notifies you about matches",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("discord.webhook-file", "DISCORD_WEBHOOK_FILE"); err != nil {
		log.Fatalf("binding DISCORD_WEBHOOK_FILE environment variable: %v", err)
	}
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is joblyst.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	viper.SetDefault("min-score", 40)
	viper.SetDefault("retention-days", 7)
	viper.SetDefault("default-location", "pakistan")
	viper.SetDefault("history-file", "sent_jobs_history.json")
	viper.SetDefault("profile-file", "cv.json")
	viper.SetDefault("schedule", "@every 6h")
}

func initConfig() {
	// Config needed only for the run and history commands. If there is no
	// config, we can skip initialization
	if runCmd.CalledAs() == "" &&
		historyStatsCmd.CalledAs() == "" &&
		historyCleanupCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
