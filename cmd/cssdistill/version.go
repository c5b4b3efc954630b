package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set at build time via ldflags:
//
//	go build -ldflags "-X main.version=1.0.0" ./cmd/cssdistill
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the cssdistill version",
	Long:  `Print the cssdistill release version embedded at build time.`,
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("cssdistill %s\n", version)
	},
}
