package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"wundercam-cli/pkg/models"
)

// Variables to hold flag values
var (
	setShootMode    int
	setSettingMode  int
	setISO          int
	setWhiteBalance int
	setExposure     int
)

// Parent Command
var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Read or change the camera's settings",
	Long:  `Read the full device state or queue and apply setting changes.`,
}

// Show Command
var stateShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Read and display the full device state",
	Run: func(cmd *cobra.Command, args []string) {
		api := setupClient()

		st, err := api.FullRead()
		if err != nil {
			fmt.Printf("Error reading camera state: %v\n", err)
			os.Exit(1)
		}

		// --- JSON OUTPUT ---
		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(st.Data()); err != nil {
				fmt.Printf("Error encoding JSON: %v\n", err)
				os.Exit(1)
			}
			return
		}
		// -------------------

		shootMode, _ := st.ShootMode()
		settingMode, _ := st.SettingMode()
		iso, _ := st.ISO()
		wb, _ := st.WhiteBalanceMode()
		exposure, _ := st.ExposureCompensation()
		battery, _ := st.BatteryGrid()
		remainNum, _ := st.RemainNum()
		remainTime, _ := st.RemainTime()
		loopTime, _ := st.LoopVideoTime()
		autoOff, _ := st.AutoShutdown()
		errorCode, _ := st.ErrorCode()

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "SETTING\tVALUE")
		fmt.Fprintln(w, "-------\t-----")
		fmt.Fprintf(w, "Shoot mode\t%d (%s)\n", shootMode, models.ShootModeName(shootMode))
		fmt.Fprintf(w, "Setting mode\t%d\n", settingMode)
		fmt.Fprintf(w, "ISO preset\t%d\n", iso)
		fmt.Fprintf(w, "White balance\t%d\n", wb)
		fmt.Fprintf(w, "Exposure comp.\t%d\n", exposure)
		fmt.Fprintf(w, "Battery\t%d/6\n", battery)
		fmt.Fprintf(w, "Pictures left\t%d\n", remainNum)
		fmt.Fprintf(w, "Video minutes left\t%d\n", remainTime)
		fmt.Fprintf(w, "Loop video limit\t%d min\n", loopTime)
		fmt.Fprintf(w, "Auto shutdown\t%d min\n", autoOff)
		fmt.Fprintf(w, "Error code\t%d\n", errorCode)
		w.Flush()
	},
}

// Set Command
var stateSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Queue and apply setting changes",
	Long: `Validates the requested values locally, then applies them to the
camera one command at a time. The camera has no transactional write, so a
failure partway leaves earlier settings applied.`,
	Example: `  wundercam-cli state set --shoot-mode 3 --iso 2
  wundercam-cli state set --setting-mode 1 --white-balance 4 --exposure 7`,
	Run: func(cmd *cobra.Command, args []string) {
		api := setupClient()

		ed := api.Prepare()

		apply := func(flag string, value int, set func(int) error) {
			if !cmd.Flags().Changed(flag) {
				return
			}
			if err := set(value); err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}
		}

		apply("shoot-mode", setShootMode, ed.SetShootMode)
		apply("setting-mode", setSettingMode, ed.SetSettingMode)
		apply("iso", setISO, ed.SetISO)
		apply("white-balance", setWhiteBalance, ed.SetWhiteBalance)
		apply("exposure", setExposure, ed.SetExposureCompensation)

		ops := ed.Operations()
		if len(ops) == 0 {
			fmt.Println("Nothing to change.")
			return
		}

		if err := api.Commit(ed); err != nil {
			fmt.Printf("Error applying settings: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Applied %d setting(s).\n", len(ops))
	},
}

func init() {
	// Register Parent
	rootCmd.AddCommand(stateCmd)

	// Register Subcommands
	stateCmd.AddCommand(stateShowCmd)
	stateCmd.AddCommand(stateSetCmd)

	// Flags for Set
	stateSetCmd.Flags().IntVar(&setShootMode, "shoot-mode", 0, "Shoot mode (0 Photo .. 6 Loop)")
	stateSetCmd.Flags().IntVar(&setSettingMode, "setting-mode", 0, "0 auto, 1 manual")
	stateSetCmd.Flags().IntVar(&setISO, "iso", 0, "ISO preset (0 AUTO .. 4 ISO800)")
	stateSetCmd.Flags().IntVar(&setWhiteBalance, "white-balance", 0, "White balance preset (0 AUTO .. 4 6500K)")
	stateSetCmd.Flags().IntVar(&setExposure, "exposure", 0, "Exposure compensation (0 AUTO, 1..13 stops)")
}
