package cmd

import (
	"context"
	"fmt"
	"time"

	"chinook/db"

	"github.com/spf13/cobra"
)

var dbMigrate bool

var dbCheckCmd = &cobra.Command{
	Use:   "dbcheck",
	Short: "Check the database connection",
	Long:  `Connect to the configured database and ping it. With --migrate, create any missing catalog tables.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		gdb, err := db.Connect(cfg)
		if err != nil {
			return err
		}
		defer db.Close(gdb)

		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()
		if err := db.Ping(ctx, gdb); err != nil {
			return err
		}
		fmt.Printf("Database %s OK (driver %s).\n", cfg.DBName, cfg.DBDriver)

		if dbMigrate {
			if err := db.AutoMigrate(gdb); err != nil {
				return err
			}
			fmt.Println("Tables migrated.")
		}
		return nil
	},
}

func init() {
	dbCheckCmd.Flags().BoolVar(&dbMigrate, "migrate", false, "create missing tables")
	rootCmd.AddCommand(dbCheckCmd)
}
