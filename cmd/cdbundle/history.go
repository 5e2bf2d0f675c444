package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vmunix/cdbundle/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent import attempts",
	RunE:  runHistoryCmd,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().String("outcome", "", "Only show attempts with this outcome (imported, failed, cancelled)")
	historyCmd.Flags().Int("limit", 20, "Maximum entries to show")
}

func runHistoryCmd(cmd *cobra.Command, args []string) error {
	outcome, _ := cmd.Flags().GetString("outcome")
	limit, _ := cmd.Flags().GetInt("limit")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	filter := history.Filter{Limit: limit}
	if outcome != "" {
		filter.Outcome = &outcome
	}

	entries, err := history.NewStore(db).List(filter)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("no import history")
		return nil
	}

	for _, e := range entries {
		fmt.Printf("%s  %-9s  %s -> %s\n",
			e.CreatedAt.Format("2006-01-02 15:04"), e.Outcome, e.DriveTitle, e.BundlePath)
	}
	return nil
}
