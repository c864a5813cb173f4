package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/careerlockin/careerlockin/internal/linkcheck"
)

var checkURLProbe bool

var checkURLCmd = &cobra.Command{
	Use:   "check-url <url>",
	Short: "Run link validation against a single URL",
	Long: `Apply the static URL policy (https only, no shorteners) to a URL and,
with --probe, perform the live reachability check used by the pipeline.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheckURL,
}

func init() {
	checkURLCmd.Flags().BoolVar(&checkURLProbe, "probe", false, "Also probe the URL over the network")
	rootCmd.AddCommand(checkURLCmd)
}

func runCheckURL(cmd *cobra.Command, args []string) error {
	url := args[0]

	result := linkcheck.Validate(url)
	if checkURLProbe && result.Status == linkcheck.StatusValid {
		result = linkcheck.NewVerifier(nil).Verify(cmd.Context(), url)
	}

	switch result.Status {
	case linkcheck.StatusValid:
		fmt.Printf("valid: %s\n", url)
	case linkcheck.StatusInvalid:
		fmt.Printf("invalid: %s (%s)\n", url, result.Reason)
	default:
		fmt.Printf("unknown: %s (%s)\n", url, result.Reason)
	}
	return nil
}
