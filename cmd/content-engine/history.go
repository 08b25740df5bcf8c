// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pdiddy/content-engine/internal/logging"
	"github.com/pdiddy/content-engine/internal/store"
	"github.com/pdiddy/content-engine/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List, show, delete, and export stored generations",
	Long: `History manages the local record of generated articles and posts kept in
store.dir/history.db.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored generations, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a stored generation",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete stored generations",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runHistoryDelete,
}

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Dump stored generations as YAML or JSON",
	Args:  cobra.NoArgs,
	RunE:  runHistoryExport,
}

func init() {
	for _, c := range []*cobra.Command{historyListCmd, historyExportCmd} {
		c.Flags().String("kind", "", "filter by kind: article or post")
		c.Flags().String("query", "", "filter by text in topic, title, or content")
	}
	historyListCmd.Flags().Int("limit", 20, "maximum number of generations to list")
	historyListCmd.Flags().Bool("json", false, "print as JSON")
	historyShowCmd.Flags().Bool("json", false, "print as JSON")
	historyExportCmd.Flags().String("format", "yaml", "dump format: yaml or json")
	historyExportCmd.Flags().String("output", "", "write to this file instead of stdout")

	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyDeleteCmd, historyExportCmd)
	rootCmd.AddCommand(historyCmd)
}

func listOptions(cmd *cobra.Command) (store.ListOptions, error) {
	opts := store.ListOptions{
		Kind:  types.ContentKind(stringFlag(cmd, "kind")),
		Query: stringFlag(cmd, "query"),
	}
	if opts.Kind != "" && opts.Kind != types.KindArticle && opts.Kind != types.KindPost {
		return opts, fmt.Errorf("--kind must be article or post, got %q", opts.Kind)
	}
	return opts, nil
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	opts, err := listOptions(cmd)
	if err != nil {
		return err
	}
	opts.Limit, _ = cmd.Flags().GetInt("limit")
	if opts.Limit <= 0 {
		return fmt.Errorf("--limit must be positive")
	}

	st, err := requireHistory()
	if err != nil {
		return err
	}
	defer st.Close()

	gens, err := st.List(cmd.Context(), opts)
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		if gens == nil {
			gens = []types.Generation{}
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(gens)
	}
	printHistory(cmd.OutOrStdout(), gens)
	return nil
}

// printHistory writes one row per generation.
func printHistory(w io.Writer, gens []types.Generation) {
	if len(gens) == 0 {
		fmt.Fprintln(w, "No generations stored.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tKIND\tCREATED\tTONE\tTITLE")
	for _, g := range gens {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			g.ID, g.Kind, g.CreatedAt.Local().Format("2006-01-02 15:04"), g.Tone, truncateTitle(g.Title, 50))
	}
	tw.Flush()
}

func truncateTitle(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	st, err := requireHistory()
	if err != nil {
		return err
	}
	defer st.Close()

	g, err := st.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	asJSON, _ := cmd.Flags().GetBool("json")
	return printGeneration(cmd.OutOrStdout(), g, asJSON)
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	st, err := requireHistory()
	if err != nil {
		return err
	}
	defer st.Close()

	var failed int
	for _, id := range args {
		if err := st.Delete(cmd.Context(), id); err != nil {
			logging.Failure(cmd.ErrOrStderr(), "%v", err)
			failed++
			continue
		}
		logging.Success(cmd.OutOrStdout(), "deleted %s", id)
	}
	if failed > 0 {
		return fmt.Errorf("%d generation(s) could not be deleted", failed)
	}
	return nil
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	opts, err := listOptions(cmd)
	if err != nil {
		return err
	}
	format := strings.ToLower(stringFlag(cmd, "format"))
	if format != "yaml" && format != "json" {
		return fmt.Errorf("--format must be yaml or json, got %q", format)
	}

	st, err := requireHistory()
	if err != nil {
		return err
	}
	defer st.Close()

	w := cmd.OutOrStdout()
	if path := stringFlag(cmd, "output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	if format == "json" {
		return st.ExportJSON(cmd.Context(), w, opts)
	}
	return st.ExportYAML(cmd.Context(), w, opts)
}
