package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"wundercam-cli/internal/catalog"
)

// Variables to hold flag values
var (
	triggerDiff   bool
	triggerSettle time.Duration
	triggerVideos bool
)

// triggerCmd represents the trigger command
var triggerCmd = &cobra.Command{
	Use:   "trigger",
	Short: "Trigger the camera's current shoot mode",
	Long: `Makes the camera act according to its configured shoot mode: take a
photo, a burst, or start/stop a recording. With --diff the file space is
scanned before and after so the newly created files can be reported.`,
	Example: `  wundercam-cli trigger
  wundercam-cli trigger --diff --settle 3s`,
	Run: func(cmd *cobra.Command, args []string) {
		api := setupClient()

		var before *catalog.Container
		if triggerDiff {
			var err error
			before, err = scanDir(api, triggerVideos)
			if err != nil {
				fmt.Printf("Error scanning before trigger: %v\n", err)
				os.Exit(1)
			}
		}

		if err := api.Trigger(); err != nil {
			fmt.Printf("Error triggering camera: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Triggered.")

		if !triggerDiff {
			return
		}

		// Give the camera time to finish writing to the SD card.
		time.Sleep(triggerSettle)

		after, err := scanDir(api, triggerVideos)
		if err != nil {
			fmt.Printf("Error scanning after trigger: %v\n", err)
			os.Exit(1)
		}

		created := after.Difference(before)
		if created.Len() == 0 {
			fmt.Println("No new files reported yet; try 'resources list'.")
			return
		}
		printContainer(created)
	},
}

func init() {
	rootCmd.AddCommand(triggerCmd)

	triggerCmd.Flags().BoolVar(&triggerDiff, "diff", false, "Report files created by this trigger")
	triggerCmd.Flags().DurationVar(&triggerSettle, "settle", 2*time.Second, "How long to wait before the after-scan")
	triggerCmd.Flags().BoolVar(&triggerVideos, "videos", false, "Diff the video directory instead of images")
}
