package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/careerlockin/careerlockin/internal/config"
	"github.com/careerlockin/careerlockin/internal/db"
)

var listUserID string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List a user's stored roadmaps",
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listUserID, "user", "", "User UUID (required)")
	_ = listCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	userID, err := uuid.Parse(listUserID)
	if err != nil {
		return fmt.Errorf("--user must be a valid UUID: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("config error: DATABASE_URL is not set")
	}

	database, err := db.Connect(cmd.Context(), cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	summaries, err := database.ListRoadmaps(cmd.Context(), userID)
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		fmt.Println("No roadmaps found.")
		return nil
	}

	for _, s := range summaries {
		fmt.Printf("%s  %-30s  %s  %s\n",
			s.ID, s.TargetRole, s.ModelName, s.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
