// Package main provides the entry point for the CareerLockin roadmap service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "careerlockin",
	Short: "CareerLockin roadmap generation service",
	Long:  "CareerLockin generates personalized, link-verified career learning roadmaps using a grounded LLM pipeline, and serves them over a REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
