// Package main implements the provet command-line tool for generating
// veterinary discharge notes from consultation data files.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
