package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/prudhvinik1/odoosync/internal/config"
	"github.com/prudhvinik1/odoosync/internal/database"
	"github.com/prudhvinik1/odoosync/internal/logging"
	"github.com/prudhvinik1/odoosync/internal/models"
	"github.com/prudhvinik1/odoosync/internal/odoo"
	"github.com/prudhvinik1/odoosync/internal/repositories"
	"github.com/prudhvinik1/odoosync/internal/services"
	"github.com/spf13/cobra"
)

// SyncOptions holds the flags of the sync command.
type SyncOptions struct {
	Only    string
	EnvFile string
	Timeout time.Duration

	entities []models.EntityType
}

// NewRootCommand creates the sync command. It mirrors Odoo partners and
// invoices into the local store and exits non-zero if any entity fails.
func NewRootCommand() *cobra.Command {
	opts := &SyncOptions{}

	cmd := &cobra.Command{
		Use:           "sync",
		Short:         "Mirror Odoo contacts and invoices into the local store",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			entities, err := parseOnly(opts.Only)
			if err != nil {
				return err
			}
			opts.entities = entities
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Only, "only", "", "sync a single entity type (contacts|invoices)")
	cmd.Flags().StringVar(&opts.EnvFile, "env-file", "", "load environment from this file instead of .env")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 0, "abort the run after this long (0 means no limit)")

	return cmd
}

func parseOnly(only string) ([]models.EntityType, error) {
	if only == "" {
		return models.AllEntities, nil
	}
	entity, err := models.ParseEntityType(strings.ToLower(only))
	if err != nil {
		return nil, fmt.Errorf("invalid --only: %w", err)
	}
	return []models.EntityType{entity}, nil
}

func runSync(cmd *cobra.Command, opts *SyncOptions) error {
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil {
			return fmt.Errorf("failed to load %s: %w", opts.EnvFile, err)
		}
	} else {
		godotenv.Load()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if err := cfg.RequireRemote(); err != nil {
		return err
	}

	logger, logCloser := logging.New(cfg.LogLevel, cfg.LogFile)
	defer logCloser.Close()

	ctx := cmd.Context()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	store, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open local store: %w", err)
	}
	defer store.Close()

	remote := odoo.NewXMLRPCClient(odoo.Credentials{
		URL:      cfg.Remote.URL,
		DB:       cfg.Remote.DB,
		Username: cfg.Remote.Username,
		Password: cfg.Remote.Password,
	}, cfg.Remote.Timeout)

	svc := services.NewSyncService(store, remote, logger)

	redisClient, err := database.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		svc.WithLock(repositories.NewRedisSyncLockRepository(redisClient), cfg.SyncLockTTL).
			WithStatus(repositories.NewRedisSyncStatusRepository(redisClient))
	}

	reports, err := svc.Run(ctx, opts.entities)
	for _, report := range reports {
		if report.Status == models.SyncSucceeded {
			fmt.Fprintf(cmd.OutOrStdout(), "%s synced.\n", displayName(report.Entity))
		}
	}
	return err
}

func displayName(entity models.EntityType) string {
	s := string(entity)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
