package main

import "wundercam-cli/cmd"

func main() {
	cmd.Execute()
}
