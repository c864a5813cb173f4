package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/careerlockin/careerlockin/internal/observability"
)

var generateUserID string

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a roadmap for a user",
	Long: `Run the full generation pipeline for one user: build the prompt from
their stored profile, call the grounded model, validate and verify every
cited resource, and persist the result.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateUserID, "user", "", "User UUID (required)")
	_ = generateCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	userID, err := uuid.Parse(generateUserID)
	if err != nil {
		return fmt.Errorf("--user must be a valid UUID: %w", err)
	}

	a, err := buildApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	result, err := a.generator.Generate(cmd.Context(), userID)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintRoadmap(result.Roadmap)
	printer.PrintVerificationSummary(result.Roadmap)
	fmt.Printf("Saved roadmap %s (model %s)\n", result.RoadmapID, result.ModelName)
	return nil
}
