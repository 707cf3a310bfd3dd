package cmd

import (
	"log"
	"time"

	"github.com/joblyst/joblyst/internal/history"
	"github.com/joblyst/joblyst/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect and maintain the send history",
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print send history statistics",
	Run: func(_ *cobra.Command, _ []string) {
		log, store := historyStore()

		stats := store.Stats()
		fields := []zap.Field{zap.Int("tracked", stats.TotalJobs)}
		if stats.OldestEntry != nil {
			fields = append(fields, zap.String("oldest", stats.OldestEntry.Format(time.RFC3339)))
		}
		if stats.NewestEntry != nil {
			fields = append(fields, zap.String("newest", stats.NewestEntry.Format(time.RFC3339)))
		}

		log.Info("send history", fields...)
	},
}

var historyCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Evict entries older than the retention window",
	Run: func(_ *cobra.Command, _ []string) {
		log, store := historyStore()

		removed := store.CleanupOldEntries()
		log.Info("cleanup finished",
			zap.Int("removed", removed),
			zap.Int("left", store.Stats().TotalJobs),
		)
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyStatsCmd)
	historyCmd.AddCommand(historyCleanupCmd)
}

func historyStore() (*zap.Logger, *history.Store) {
	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	return zlog, history.New(config.HistoryFile, config.RetentionDays, zlog)
}
