package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"rentledger/internal/middleware"
	"rentledger/internal/models"
	"rentledger/internal/store"
)

func sweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Run the monthly recurrence sweep once and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			gw, err := openGateway(cmd, cfg)
			if err != nil {
				return err
			}
			defer gw.Close()

			st := store.New(gw, logger)
			if err := st.Init(cmd.Context()); err != nil {
				return err
			}
			res, err := st.RunMonthlySweep(cmd.Context(), time.Now())
			if err != nil {
				return err
			}
			fmt.Printf("month %s: %d payments, %d expenses\n", res.MonthKey, res.PaymentsCreated, res.ExpensesCreated)
			return nil
		},
	}
}

func exportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the full collection set as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			gw, err := openGateway(cmd, cfg)
			if err != nil {
				return err
			}
			defer gw.Close()

			st := store.New(gw, logger)
			if err := st.Init(cmd.Context()); err != nil {
				return err
			}
			data, err := json.MarshalIndent(st.State(), "", "  ")
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				fmt.Println(string(data))
				return nil
			}
			return os.WriteFile(out, data, 0o600)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "-", "output file, - for stdout")
	return cmd
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all data with a JSON backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var payload models.Collections
			if err := json.Unmarshal(data, &payload); err != nil {
				return fmt.Errorf("parse backup: %w", err)
			}

			gw, err := openGateway(cmd, cfg)
			if err != nil {
				return err
			}
			defer gw.Close()

			st := store.New(gw, logger)
			if err := st.Init(cmd.Context()); err != nil {
				return err
			}
			if err := st.ImportState(cmd.Context(), &payload); err != nil {
				return err
			}
			fmt.Println("import complete")
			return nil
		},
	}
}

func tokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Mint an API token with the configured secret",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.Server.JWTSecret == "" {
				return fmt.Errorf("server.jwt_secret is not configured; tokens minted here must outlive the process")
			}
			token, err := middleware.MintToken(cfg.Server.JWTSecret, time.Duration(cfg.Server.TokenTTLHours)*time.Hour)
			if err != nil {
				return err
			}
			fmt.Println(token)
			return nil
		},
	}
}
