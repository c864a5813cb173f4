package main

import (
	"github.com/spf13/cobra"

	"github.com/careerlockin/careerlockin/internal/observability"
	"github.com/careerlockin/careerlockin/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for generating and reading roadmaps.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := buildApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	port := a.cfg.Port
	if servePort != 0 {
		port = servePort
	}

	srv := server.New(a.generator, a.database, *observability.GetLogger())
	return srv.Start(port)
}
