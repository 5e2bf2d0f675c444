package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vmunix/cdbundle/internal/bundle"
)

var sniffCmd = &cobra.Command{
	Use:   "sniff <path>...",
	Short: "Check whether files are importable cue sheets",
	Long: `Check whether files are importable cue sheets.

A file qualifies when its extension identifies it as a cue sheet or its
contents parse as one (cue sheets renamed to other extensions are
recognized by content). Exits non-zero if any path is not importable.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSniffCmd,
}

func init() {
	rootCmd.AddCommand(sniffCmd)
}

func runSniffCmd(cmd *cobra.Command, args []string) error {
	var unsuitable int
	for _, path := range args {
		drive := bundle.SourceDrive{CuePath: path, Title: path}
		if bundle.Suitable(bundle.ExtIdentifier{}, drive) {
			fmt.Printf("%s: cue sheet\n", path)
		} else {
			fmt.Printf("%s: not a cue sheet\n", path)
			unsuitable++
		}
	}
	if unsuitable > 0 {
		return fmt.Errorf("%d of %d paths are not importable", unsuitable, len(args))
	}
	return nil
}
