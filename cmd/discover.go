package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"wundercam-cli/internal/config"
)

// discoverCmd represents the discover command
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Check that the camera is reachable and usable",
	Long: `Probes the camera's control and file services, verifies the SD card
is usable and saves the camera address for future commands.

Example:
  wundercam-cli discover --ip 192.168.100.1`,
	Run: func(cmd *cobra.Command, args []string) {
		api := setupClient()

		fmt.Printf("Probing camera at %s ...\n", api.CameraIP())

		if err := api.Discover(); err != nil {
			fmt.Printf("Error discovering camera: %v\n", err)
			os.Exit(1)
		}

		st := api.State()
		serial, _ := st.SerialNumber()
		model, _ := st.ProductModel()
		firmware, _ := st.FirmwareSoftwareVersion()
		ssid, _ := st.WifiSSID()
		pass, _ := st.WifiPass()

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "MODEL\tSERIAL\tFIRMWARE\tSSID\tWIFI PASS")
		fmt.Fprintln(w, "-----\t------\t--------\t----\t---------")
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", model, serial, firmware, ssid, pass)
		w.Flush()

		if err := config.SaveCameraIP(api.CameraIP()); err != nil {
			fmt.Printf("Failed to save configuration file: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Camera address saved.")
	},
}

func init() {
	rootCmd.AddCommand(discoverCmd)
}
