// Package main provides the entry point for the starship-setup CLI.
package main

import "os"

func main() {
	os.Exit(Execute())
}
