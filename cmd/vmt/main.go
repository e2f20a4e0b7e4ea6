// Command vmt generates, merges, formats, and checks Source engine VMT
// material files.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
