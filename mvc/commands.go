package mvc

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"blogspace/app/storage"
	"blogspace/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errBadgerOnly = errors.New("this command requires the badger storage driver")

func badgerPath(cfg *config.Config) (string, error) {
	if cfg.Storage.Driver != storage.DriverBadger {
		return "", errBadgerOnly
	}
	return cfg.Storage.Path, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// confirm asks a yes/no question on the command's input.
func confirm(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", question)
	var response string
	fmt.Fscanln(cmd.InOrStdin(), &response)
	response = strings.TrimSpace(response)
	return response == "y" || response == "Y"
}

func newInitCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a new empty database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.load()
			if err != nil {
				return err
			}
			dbPath, err := badgerPath(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if exists(dbPath) {
				fmt.Fprintln(out, "Database already exists. Use 'clean' first if you want to reinitialize.")
				return nil
			}

			if err := os.MkdirAll(dbPath, 0755); err != nil {
				return fmt.Errorf("failed to create database directory: %w", err)
			}
			db, err := storage.OpenBadger(dbPath)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer db.Close()

			logger.Debug("database initialized", zap.String("path", dbPath))
			fmt.Fprintln(out, "Database initialized successfully")
			return nil
		},
	}
}

func newCleanCommand(opts *options) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Delete the blog database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := opts.load()
			if err != nil {
				return err
			}
			dbPath, err := badgerPath(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !exists(dbPath) {
				fmt.Fprintln(out, "Database is already clean (does not exist)")
				return nil
			}

			if !yes && !confirm(cmd, "Are you sure you want to clean the database? This cannot be undone.") {
				fmt.Fprintln(out, "Operation cancelled")
				return nil
			}

			if err := os.RemoveAll(dbPath); err != nil {
				return fmt.Errorf("failed to clean database: %w", err)
			}
			fmt.Fprintln(out, "Database cleaned successfully")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newBackupCommand(opts *options) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Create a backup of the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := opts.load()
			if err != nil {
				return err
			}
			dbPath, err := badgerPath(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !exists(dbPath) {
				fmt.Fprintln(out, "No database exists to backup")
				return nil
			}

			if dir == "" {
				dir = cfg.Backup.Dir
			}
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create backup directory: %w", err)
			}

			db, err := storage.OpenBadger(dbPath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer db.Close()

			backupFile := filepath.Join(dir, fmt.Sprintf("backup_%d.db", time.Now().UnixNano()))
			f, err := os.Create(backupFile)
			if err != nil {
				return fmt.Errorf("failed to create backup file: %w", err)
			}
			defer f.Close()

			if err := db.Backup(f); err != nil {
				return err
			}

			fmt.Fprintf(out, "Database backed up successfully to %s\n", backupFile)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "backup directory (overrides backup.dir)")
	return cmd
}

func newRestoreCommand(opts *options) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "restore <file>",
		Short: "Restore the database from a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := opts.load()
			if err != nil {
				return err
			}
			dbPath, err := badgerPath(cfg)
			if err != nil {
				return err
			}
			return restore(cmd, dbPath, args[0], yes)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "replace an existing database without asking")
	return cmd
}

func restore(cmd *cobra.Command, dbPath, backupFile string, yes bool) error {
	out := cmd.OutOrStdout()

	f, err := os.Open(backupFile)
	if err != nil {
		return fmt.Errorf("failed to open backup file: %w", err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat backup file: %w", err)
	}
	if fi.Size() == 0 {
		return fmt.Errorf("backup file is empty: %s", backupFile)
	}

	if exists(dbPath) {
		if !yes && !confirm(cmd, "Existing database found. Do you want to replace it?") {
			fmt.Fprintln(out, "Operation cancelled")
			return nil
		}
		if err := os.RemoveAll(dbPath); err != nil {
			return fmt.Errorf("failed to remove existing database: %w", err)
		}
	}

	if err := os.MkdirAll(dbPath, 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	db, err := storage.OpenBadger(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := loadBackup(db, f); err != nil {
		return err
	}

	fmt.Fprintln(out, "Database restored successfully")
	return nil
}

// loadBackup guards against badger panicking on a malformed backup stream.
func loadBackup(db *storage.BadgerAdapter, r io.Reader) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic occurred during restore: %v", p)
		}
	}()
	return db.Restore(r)
}
