package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cuemby/warrenchain/pkg/export"
	"github.com/cuemby/warrenchain/pkg/log"
	"github.com/cuemby/warrenchain/pkg/storage"
)

var dbUtilsCmd = &cobra.Command{
	Use:   "db-utils",
	Short: "Dump node database tables as JSON",
	RunE:  runDBUtils,
}

func init() {
	dbUtilsCmd.Flags().String("db", "", "Path to the node's database file (required)")
	dbUtilsCmd.Flags().String("tables", "block,nonce,balance", "Comma-separated tables to export")
	dbUtilsCmd.Flags().String("out", "", "Output file (stdout if empty)")
	_ = dbUtilsCmd.MarkFlagRequired("db")
}

func runDBUtils(cmd *cobra.Command, args []string) error {
	dbPath, _ := cmd.Flags().GetString("db")
	tables, _ := cmd.Flags().GetString("tables")
	out, _ := cmd.Flags().GetString("out")

	log.Debug(fmt.Sprintf("db-utils: opening %s", dbPath))
	store, err := storage.CreateOrOpen(dbPath)
	if err != nil {
		return fmt.Errorf("db-utils: open %s: %w", dbPath, err)
	}
	defer store.Close()

	raw, err := export.Export(store, export.ParseTableNames(tables))
	if err != nil {
		return fmt.Errorf("db-utils: export: %w", err)
	}
	log.Info(fmt.Sprintf("db-utils: exported tables %s", tables))

	if out == "" {
		_, err = os.Stdout.Write(append(raw, '\n'))
		return err
	}
	if err := os.WriteFile(out, raw, 0o644); err != nil {
		log.Error(fmt.Sprintf("db-utils: failed to write %s: %v", out, err))
		return err
	}
	return nil
}
