package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docsift/docsift/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the docsift version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Full())
	},
}
