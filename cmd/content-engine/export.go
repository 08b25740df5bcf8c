// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/content-engine/internal/export"
	"github.com/pdiddy/content-engine/internal/generate"
)

var exportCmd = &cobra.Command{
	Use:   "export [id]",
	Short: "Export a stored generation or a text file as PDF, DOCX, or HTML",
	Long: `Export writes a stored generation (by id) or a Markdown/text file (--file)
to the output directory in each requested format. Articles use the flowing
paragraph layout; posts and --layout lines draw one line per row.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringSlice("format", nil, "formats to write: pdf, docx, html (default from export.formats)")
	exportCmd.Flags().String("file", "", "Markdown or text file to export instead of a stored generation (- for stdin)")
	exportCmd.Flags().String("title", "", "document title for --file (default: first heading)")
	exportCmd.Flags().String("layout", string(export.LayoutFlow), "PDF layout for --file: flow or lines")
	exportCmd.Flags().String("output-dir", "", "directory for exported files (default from export.output_dir)")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	file := stringFlag(cmd, "file")
	if (len(args) == 0) == (file == "") {
		return fmt.Errorf("provide either a generation id or --file")
	}

	var doc export.Document
	if file != "" {
		data, err := readInput(file)
		if err != nil {
			return err
		}
		layout := export.Layout(stringFlag(cmd, "layout"))
		if layout != export.LayoutFlow && layout != export.LayoutLines {
			return fmt.Errorf("--layout must be flow or lines, got %q", layout)
		}
		body := string(data)
		title := stringFlag(cmd, "title")
		if title == "" {
			fallback := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
			title = generate.ExtractTitle(body, fallback)
		}
		doc = export.Document{Title: title, Body: body, Layout: layout}
	} else {
		st, err := requireHistory()
		if err != nil {
			return err
		}
		defer st.Close()
		g, err := st.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		doc = export.FromGeneration(g)
	}

	names, _ := cmd.Flags().GetStringSlice("format")
	if len(names) == 0 {
		names = cfg.Export.Formats
	}
	return exportTo(cmd, doc, names)
}
