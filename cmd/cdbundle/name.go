package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vmunix/cdbundle/internal/bundle"
)

var nameCmd = &cobra.Command{
	Use:   "name <cue-sheet>",
	Short: "Show the bundle name a cue sheet would import to",
	Args:  cobra.ExactArgs(1),
	RunE:  runNameCmd,
}

func init() {
	rootCmd.AddCommand(nameCmd)
	nameCmd.Flags().String("letter", "", "Drive letter label")
	nameCmd.Flags().String("dest", "", "Destination parent folder; prints the full path when set")
}

func runNameCmd(cmd *cobra.Command, args []string) error {
	letter, _ := cmd.Flags().GetString("letter")
	dest, _ := cmd.Flags().GetString("dest")

	if !bundle.ValidLetter(letter) {
		return fmt.Errorf("--letter must be a single character, got %q", letter)
	}

	drive := bundle.SourceDrive{CuePath: args[0], Letter: letter}
	if dest != "" {
		fmt.Println(bundle.ImportedPath(bundle.Request{Drive: drive, DestParent: dest}))
		return nil
	}
	fmt.Println(bundle.BundleName(drive))
	return nil
}
