// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/content-engine/internal/export"
	"github.com/pdiddy/content-engine/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the generation and export HTTP API",
	Long: `Serve starts a JSON HTTP API:

  POST   /api/articles                        generate an article
  POST   /api/posts                           generate a LinkedIn post
  GET    /api/generations?kind=&q=&limit=     list stored generations
  GET    /api/generations/:id                 show one generation
  DELETE /api/generations/:id                 delete one generation
  POST   /api/generations/:id/regenerate      regenerate with overrides
  GET    /api/generations/:id/export/:format  download as pdf, docx, or html
  POST   /api/export/:format                  export posted text
  GET    /healthz                             liveness and backend name

The server stops gracefully on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from server.addr, :8080)")
	serveCmd.Flags().Duration("request-timeout", 0, "per-request generation timeout (default from server.request_timeout)")
	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
	viper.BindPFlag("server.request_timeout", serveCmd.Flags().Lookup("request-timeout"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	gen, err := newGenerator()
	if err != nil {
		return err
	}

	opts := server.Options{
		Export:         export.Options{CompressPDF: cfg.Export.CompressPDF},
		RequestTimeout: cfg.Server.RequestTimeout,
		Logger:         logger,
	}
	st, err := openHistory()
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close()
		opts.History = st
	}

	gin.SetMode(gin.ReleaseMode)
	return server.New(gen, opts).Run(cmd.Context(), cfg.Server.Addr)
}
