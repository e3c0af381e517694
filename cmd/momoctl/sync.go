package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"momopress/internal/budget"
	"momopress/internal/config"
	"momopress/internal/database"
	"momopress/internal/notify"
	"momopress/internal/services"
	"momopress/internal/smsstore"
	"momopress/internal/validator"
)

type syncOptions struct {
	phone   string
	dump    string
	android string
	full    bool
}

// openStore loads the configuration and opens the migrated database.
func openStore() (*config.Config, *database.Manager, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	mgr, err := database.NewManager(database.NewConfig(cfg))
	if err != nil {
		return nil, nil, err
	}
	if err := mgr.RunMigrations(); err != nil {
		_ = mgr.Close()
		return nil, nil, err
	}
	return cfg, mgr, nil
}

func checkPhone(phone string) error {
	if !validator.ValidMSISDN(phone) {
		return fmt.Errorf("invalid phone %q (use 07XXXXXXXX or 2507XXXXXXXX)", phone)
	}
	return nil
}

func newSyncCmd() *cobra.Command {
	opts := &syncOptions{}
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Import MoMo messages for an account into the store",
		Long: `sync reads MoMo messages from an SMS backup (--dump), an Android mmssms.db
(--android), or the uploaded inbox when neither is given, and records them
for --phone. Without --full only messages newer than the checkpoint are read.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkPhone(opts.phone); err != nil {
				return err
			}

			cfg, mgr, err := openStore()
			if err != nil {
				return err
			}
			defer mgr.Close()
			db := mgr.DB()

			var source services.MessageSource
			switch {
			case opts.dump != "":
				source = smsstore.NewDumpSource(opts.dump)
			case opts.android != "":
				src, err := smsstore.NewAndroidSource(opts.android)
				if err != nil {
					return err
				}
				defer src.Close()
				source = src
			default:
				source = services.NewInboxSource(db)
			}

			users := services.NewUserService(db)
			ledger := services.NewLedgerService(db)
			syncer := services.NewSyncService(services.SyncDeps{
				Source:      source,
				Users:       users,
				Ledger:      ledger,
				Budgets:     services.NewBudgetService(db, ledger),
				Checkpoints: services.NewCheckpointService(db),
				Notifier:    notify.Log{},
			}, services.SyncOptions{
				Sender:       cfg.SMSSender,
				FetchTimeout: cfg.SyncFetchTimeout,
				Location:     cfg.Location,
			})

			result, err := syncer.Sync(cmd.Context(), opts.phone, !opts.full)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&opts.phone, "phone", "", "Account phone (required)")
	cmd.Flags().StringVar(&opts.dump, "dump", "", "SMS backup XML file")
	cmd.Flags().StringVar(&opts.android, "android", "", "Android mmssms.db file")
	cmd.Flags().BoolVar(&opts.full, "full", false, "Read every message instead of only new ones")
	_ = cmd.MarkFlagRequired("phone")
	cmd.MarkFlagsMutuallyExclusive("dump", "android")
	return cmd
}

func newAlertsCmd() *cobra.Command {
	var phone string
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Check month-to-date spending against the budget limits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkPhone(phone); err != nil {
				return err
			}

			cfg, mgr, err := openStore()
			if err != nil {
				return err
			}
			defer mgr.Close()
			db := mgr.DB()

			budgets := services.NewBudgetService(db, services.NewLedgerService(db))
			alerts, err := budgets.CheckAlerts(cmd.Context(), phone, time.Now().In(cfg.Location))
			if err != nil {
				return err
			}
			if alerts == nil {
				alerts = []budget.Alert{}
			}
			return printJSON(cmd.OutOrStdout(), alerts)
		},
	}

	cmd.Flags().StringVar(&phone, "phone", "", "Account phone (required)")
	_ = cmd.MarkFlagRequired("phone")
	return cmd
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
