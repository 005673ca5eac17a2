package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"wundercam-cli/internal/catalog"
	"wundercam-cli/internal/client"
)

// Variables to hold flag values
var (
	listVideos     bool
	downloadVideos bool
	downloadOutput string
)

// scanDir scans either the image or the video directory with the S1 presets.
func scanDir(api *client.WunderClient, videos bool) (*catalog.Container, error) {
	if videos {
		return api.Videos()
	}
	return api.Images()
}

// printContainer renders a container as a table of resources, sequences
// expanded to their member count and span.
func printContainer(c *catalog.Container) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "#\tTYPE\tFILES\tNAME")
	fmt.Fprintln(w, "-\t----\t-----\t----")
	for i, r := range c.Resources() {
		switch res := r.(type) {
		case *catalog.SingleResource:
			fmt.Fprintf(w, "%d\tsingle\t1\t%s\n", i, path.Base(res.RemoteURI()))
		case *catalog.SequenceResource:
			first := path.Base(res.At(0).RemoteURI())
			last := path.Base(res.At(res.Len() - 1).RemoteURI())
			fmt.Fprintf(w, "%d\tsequence\t%d\t%s .. %s\n", i, res.Len(), first, last)
		}
	}
	w.Flush()
}

// Parent Command
var resourcesCmd = &cobra.Command{
	Use:   "resources",
	Short: "List or download files from the camera",
	Long:  `Enumerate the camera's file space and download images and videos.`,
}

// List Command
var resourcesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List files on the camera's SD card",
	Run: func(cmd *cobra.Command, args []string) {
		api := setupClient()

		container, err := scanDir(api, listVideos)
		if err != nil {
			fmt.Printf("Error scanning camera files: %v\n", err)
			os.Exit(1)
		}

		// --- JSON OUTPUT ---
		if jsonOutput {
			type row struct {
				Type        string   `json:"type"`
				Fingerprint string   `json:"fingerprint"`
				Files       []string `json:"files"`
			}
			rows := make([]row, 0, container.Len())
			for _, r := range container.Resources() {
				switch res := r.(type) {
				case *catalog.SingleResource:
					rows = append(rows, row{Type: "single", Fingerprint: res.Fingerprint(),
						Files: []string{res.RemoteURI()}})
				case *catalog.SequenceResource:
					files := make([]string, 0, res.Len())
					for _, m := range res.Members() {
						files = append(files, m.RemoteURI())
					}
					rows = append(rows, row{Type: "sequence", Fingerprint: res.Fingerprint(), Files: files})
				}
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(rows); err != nil {
				fmt.Printf("Error encoding JSON: %v\n", err)
				os.Exit(1)
			}
			return
		}
		// -------------------

		printContainer(container)
	},
}

// Download Command
var resourcesDownloadCmd = &cobra.Command{
	Use:     "download",
	Short:   "Download all files to a local directory",
	Example: `  wundercam-cli resources download --output ./shots`,
	Run: func(cmd *cobra.Command, args []string) {
		api := setupClient()

		fmt.Printf("Scanning %s ...\n", api.FileURI())

		container, err := scanDir(api, downloadVideos)
		if err != nil {
			fmt.Printf("Error scanning camera files: %v\n", err)
			os.Exit(1)
		}

		if err := os.MkdirAll(downloadOutput, 0755); err != nil {
			fmt.Printf("Error creating output directory: %v\n", err)
			os.Exit(1)
		}

		for i, r := range container.Resources() {
			dest := downloadOutput
			if single, ok := r.(*catalog.SingleResource); ok {
				dest = path.Join(downloadOutput, path.Base(single.RemoteURI()))
			}
			if err := r.SaveTo(api, dest); err != nil {
				fmt.Printf("Error downloading resource %d: %v\n", i, err)
				os.Exit(1)
			}
		}

		fmt.Printf("Downloaded %d resource(s) to %s\n", container.Len(), downloadOutput)
	},
}

func init() {
	// Register Parent
	rootCmd.AddCommand(resourcesCmd)

	// Register Subcommands
	resourcesCmd.AddCommand(resourcesListCmd)
	resourcesCmd.AddCommand(resourcesDownloadCmd)

	// Flags for List
	resourcesListCmd.Flags().BoolVar(&listVideos, "videos", false, "List videos instead of images")

	// Flags for Download
	resourcesDownloadCmd.Flags().BoolVar(&downloadVideos, "videos", false, "Download videos instead of images")
	resourcesDownloadCmd.Flags().StringVar(&downloadOutput, "output", ".", "Directory to save files into")
}
