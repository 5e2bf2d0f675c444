package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vmunix/cdbundle/internal/bundle"
	"github.com/vmunix/cdbundle/internal/history"
	"github.com/vmunix/cdbundle/internal/textenc"
	"github.com/vmunix/cdbundle/internal/transfer"
	"golang.org/x/sync/errgroup"
)

var importCmd = &cobra.Command{
	Use:   "import <cue-sheet>...",
	Short: "Import disc images into bundle directories",
	Long: `Import one or more disc images into bundle directories.

Each cue sheet's referenced files are copied (or moved with --move) into a
flat <name>.cdmedia folder under the destination root, and a rewritten
tracks.cue is written alongside them. On any failure the partially written
bundle is removed.

Examples:
  cdbundle import "/images/Quake.cue"
  cdbundle import --move --dest /srv/cdmedia /images/*.cue
  cdbundle import --letter D --dry-run "/images/Quake.cue"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImportCmd,
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().String("dest", "", "Destination parent folder (overrides config)")
	importCmd.Flags().Bool("move", false, "Move files instead of copying (deletes originals)")
	importCmd.Flags().String("letter", "", "Drive letter label for the bundle name (single import only)")
	importCmd.Flags().Bool("dry-run", false, "Show the transfer plan without writing anything")
	importCmd.Flags().Int("jobs", 2, "Concurrent imports when given multiple cue sheets")
}

func runImportCmd(cmd *cobra.Command, args []string) error {
	dest, _ := cmd.Flags().GetString("dest")
	move, _ := cmd.Flags().GetBool("move")
	letter, _ := cmd.Flags().GetString("letter")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	jobs, _ := cmd.Flags().GetInt("jobs")

	if !bundle.ValidLetter(letter) {
		return fmt.Errorf("--letter must be a single character, got %q", letter)
	}
	if letter != "" && len(args) > 1 {
		return fmt.Errorf("--letter applies to a single import, got %d cue sheets", len(args))
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if dest == "" {
		dest = cfg.Bundles.Root
	}
	if dest == "" {
		return fmt.Errorf("no destination folder: set bundles.root in the config or pass --dest")
	}
	copyFiles := cfg.Bundles.CopyFiles
	if cmd.Flags().Changed("move") {
		copyFiles = !move
	}

	log := newLogger(cfg)

	if dryRun {
		for _, cuePath := range args {
			if err := printPlan(cuePath, letter, dest); err != nil {
				return err
			}
		}
		return nil
	}

	db, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	store := history.NewStore(db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Imports are independent (distinct destination bundles), so they may
	// run concurrently; each import is strictly sequential inside.
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for _, cuePath := range args {
		g.Go(func() error {
			return importOne(ctx, cuePath, letter, dest, copyFiles, store, log)
		})
	}
	return g.Wait()
}

func importOne(ctx context.Context, cuePath, letter, dest string, copyFiles bool, store *history.Store, log *slog.Logger) error {
	abs, err := filepath.Abs(cuePath)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", cuePath, err)
	}

	drive := bundle.SourceDrive{
		CuePath: abs,
		Letter:  letter,
		Title:   driveTitle(abs),
	}
	req := bundle.Request{Drive: drive, DestParent: dest, CopyFiles: copyFiles}

	mode := transfer.Move
	if copyFiles {
		mode = transfer.Copy
	}
	imp := bundle.New(req, transfer.New(mode, log), log)

	result, err := imp.Run(ctx)
	recordOutcome(store, req, result, err, log)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "cancelled: %s\n", drive.Title)
			return err
		}
		return fmt.Errorf("import %s: %w", drive.Title, err)
	}

	fmt.Printf("imported %s -> %s (%d files, %d references rewritten)\n",
		drive.Title, result.BundlePath, result.Files, result.Rewritten)
	for _, s := range result.Suggestions {
		fmt.Fprintf(os.Stderr, "warning: %s not found; closest match is %s\n", s.Missing, s.Candidate)
	}
	return nil
}

// recordOutcome persists the terminal state of an attempt. History is an
// audit trail, so failures to record are logged and swallowed.
func recordOutcome(store *history.Store, req bundle.Request, result *bundle.Result, runErr error, log *slog.Logger) {
	entry := &history.Entry{
		DriveTitle: req.Drive.Title,
		CuePath:    req.Drive.CuePath,
		BundlePath: bundle.ImportedPath(req),
	}

	data := map[string]any{"copy": req.CopyFiles}
	switch {
	case runErr == nil:
		entry.Outcome = history.OutcomeImported
		data["files"] = result.Files
		data["rewritten"] = result.Rewritten
	case errors.Is(runErr, context.Canceled):
		entry.Outcome = history.OutcomeCancelled
	default:
		entry.Outcome = history.OutcomeFailed
		data["error"] = runErr.Error()
	}

	blob, _ := json.Marshal(data)
	entry.Data = string(blob)
	if err := store.Add(entry); err != nil {
		log.Warn("could not record import history", "error", err)
	}
}

// printPlan shows what an import would do without touching the destination.
func printPlan(cuePath, letter, dest string) error {
	abs, err := filepath.Abs(cuePath)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", cuePath, err)
	}

	drive := bundle.SourceDrive{CuePath: abs, Letter: letter, Title: driveTitle(abs)}
	req := bundle.Request{Drive: drive, DestParent: dest}
	bundlePath := bundle.ImportedPath(req)

	text, err := textenc.ReadFile(abs)
	if err != nil {
		return fmt.Errorf("%s: %w", drive.Title, err)
	}

	plan, err := bundle.BuildPlan(text, filepath.Dir(abs), bundlePath)
	if err != nil {
		return fmt.Errorf("%s: %w", drive.Title, err)
	}

	fmt.Printf("%s -> %s\n", drive.Title, bundlePath)
	for _, tr := range plan.Transfers {
		marker := ""
		if _, err := os.Stat(tr.Source); err != nil {
			marker = "  [missing]"
			if s, ok := bundle.SuggestName(filepath.Base(tr.Source), filepath.Dir(tr.Source)); ok {
				marker = fmt.Sprintf("  [missing; closest: %s]", s.Candidate)
			}
		}
		fmt.Printf("  %s -> %s%s\n", tr.Source, filepath.Base(tr.Dest), marker)
	}
	for _, rw := range plan.Rewrites {
		fmt.Printf("  rewrite %q -> %q\n", rw.Old, rw.New)
	}
	return nil
}

// driveTitle is the human-readable name used in messages and history.
func driveTitle(cuePath string) string {
	base := filepath.Base(cuePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
