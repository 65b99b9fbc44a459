package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ponche/go-lycans-metrics/internal/config"
	"github.com/ponche/go-lycans-metrics/internal/filter"
	"github.com/ponche/go-lycans-metrics/internal/model"
	"github.com/ponche/go-lycans-metrics/internal/roles"
	"github.com/ponche/go-lycans-metrics/internal/storage"
)

var (
	dbPath  string
	cfgPath string
)

var rootCmd = &cobra.Command{
	Use:   "lycmetrics",
	Short: "Lycans game-log statistics tool",
	Long:  "Import Lycans game-log exports and compute role, death, meeting and voting statistics.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	defaultDB := filepath.Join(mustUserHome(), ".lycmetrics", "games.db")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDB, "path to SQLite database")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", config.DefaultPath(), "path to config file")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(deathsCmd)
	rootCmd.AddCommand(meetingsCmd)
	rootCmd.AddCommand(votesCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(trendCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(dropCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(configCmd)
}

func mustUserHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func openDB() (*storage.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return db, nil
}

func campOptions(cfg *config.Config) roles.Options {
	return roles.Options{
		RegroupLovers:       cfg.Camps.RegroupLovers,
		RegroupVillagers:    cfg.Camps.RegroupVillagers,
		RegroupWolfSubRoles: cfg.Camps.RegroupWolfSubRoles,
	}
}

// loadGames opens the store and returns the games accepted by the shared
// filter flags, in stored order.
func loadGames(db *storage.DB, cfg *config.Config) ([]model.GameLogEntry, error) {
	games, err := db.LoadGames()
	if err != nil {
		return nil, fmt.Errorf("load games: %w", err)
	}
	f, err := buildFilters(cfg)
	if err != nil {
		return nil, err
	}
	engine := filter.NewEngine(campOptions(cfg), cfg.Maps.Primary)
	return engine.Apply(games, f), nil
}
