// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/content-engine/internal/export"
	"github.com/pdiddy/content-engine/internal/generate"
	"github.com/pdiddy/content-engine/internal/logging"
	"github.com/pdiddy/content-engine/internal/store"
	"github.com/pdiddy/content-engine/pkg/types"
)

// newGenerator builds the backend and generator for the configured provider.
func newGenerator() (*generate.Generator, error) {
	backend, err := generate.NewBackend(cfg.AI)
	if err != nil {
		return nil, err
	}
	return generate.New(backend, cfg.AI, logger)
}

// openHistory opens the history store. It returns nil when the store is
// disabled.
func openHistory() (*store.Store, error) {
	if cfg.Store.Disabled {
		return nil, nil
	}
	return store.NewStore(cfg.Store)
}

// requireHistory opens the history store or fails when it is disabled.
func requireHistory() (*store.Store, error) {
	if cfg.Store.Disabled {
		return nil, errors.New("history is disabled (store.disabled: true)")
	}
	return store.NewStore(cfg.Store)
}

// regenerateFrom loads generation id and runs it again with overrides.
func regenerateFrom(ctx context.Context, gen *generate.Generator, id string, o generate.Overrides, kind types.ContentKind) (*types.Generation, error) {
	st, err := requireHistory()
	if err != nil {
		return nil, err
	}
	defer st.Close()

	prev, err := st.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if prev.Kind != kind {
		return nil, fmt.Errorf("generation %s is a %s, not a %s", id, prev.Kind, kind)
	}
	return gen.Regenerate(ctx, prev, o)
}

// finish stores g, prints it, and exports it when --export is set.
func finish(cmd *cobra.Command, g *types.Generation) error {
	ctx := cmd.Context()
	stderr := cmd.ErrOrStderr()

	st, err := openHistory()
	if err != nil {
		logging.Warning(stderr, "history unavailable: %v", err)
	} else if st != nil {
		defer st.Close()
		if err := st.Save(ctx, g); err != nil {
			logging.Warning(stderr, "saving to history: %v", err)
		}
	}

	for _, w := range g.Warnings {
		logging.Warning(stderr, "%s", w)
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	if err := printGeneration(cmd.OutOrStdout(), g, asJSON); err != nil {
		return err
	}

	names, _ := cmd.Flags().GetStringSlice("export")
	if len(names) == 0 {
		return nil
	}
	return exportTo(cmd, export.FromGeneration(g), names)
}

// exportTo writes doc in each named format to --output-dir (or the
// configured directory).
func exportTo(cmd *cobra.Command, doc export.Document, names []string) error {
	formats, err := export.ParseFormats(names)
	if err != nil {
		return err
	}
	dir, _ := cmd.Flags().GetString("output-dir")
	if dir == "" {
		dir = cfg.Export.OutputDir
	}

	result := export.ExportFiles(doc, formats, export.Options{CompressPDF: cfg.Export.CompressPDF}, dir, cmd.ErrOrStderr())
	if result.HasFailures() {
		return fmt.Errorf("%d format(s) failed to export", result.Failed)
	}
	return nil
}

// printGeneration writes g as indented JSON, or as Markdown-style text.
func printGeneration(w io.Writer, g *types.Generation, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(g)
	}

	fmt.Fprintf(w, "id: %s\n\n", g.ID)
	fmt.Fprintln(w, g.Content)

	section := func(title, body string) {
		if body == "" {
			return
		}
		fmt.Fprintf(w, "\n--- %s ---\n%s\n", title, body)
	}
	section("LinkedIn summary", g.Summary)
	section("Tweetable quotes", g.Quotes)
	section("SEO suggestions", g.SEO)

	fmt.Fprintf(w, "\n%s\n", generate.FormatReadability(g.Readability))
	if g.ImageSuggestion != "" {
		fmt.Fprintln(w, g.ImageSuggestion)
	}
	return nil
}

// addExportFlags registers --export, --output-dir, and --json.
func addExportFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("export", nil, "export formats after generating: pdf, docx, html")
	cmd.Flags().String("output-dir", "", "directory for exported files (default from export.output_dir)")
	cmd.Flags().Bool("json", false, "print the generation as JSON")
}

// stringFlag returns the trimmed value of a string flag.
func stringFlag(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return strings.TrimSpace(v)
}

// readInput reads path, or stdin when path is "-".
func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
