package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"wundercam-cli/internal/client"
	"wundercam-cli/internal/config"
	"wundercam-cli/internal/logging"
)

var cfgFile string
var jsonOutput bool
var cameraIP string
var debugLog bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "wundercam-cli",
	Short: "A CLI for the Wunder 360 S1 panoramic camera",
	Long: `Control shoot settings, trigger captures and download images and
videos from a Wunder 360 S1 over its Wi-Fi HTTP interface.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// setupClient builds a client from the --ip flag, falling back to the
// address saved by a previous 'discover' and finally the factory default.
func setupClient() *client.WunderClient {
	ip := cameraIP
	if ip == "" {
		ip = viper.GetString("camera_ip")
	}
	return client.New(ip, logging.New("wundercam-cli", debugLog))
}

func init() {
	cobra.OnInitialize(func() { config.InitConfig(cfgFile) })

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.wundercam-cli.yaml)")
	rootCmd.PersistentFlags().StringVar(&cameraIP, "ip", "", "camera IP address (default is the saved or factory address)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "Log every control request")
}
