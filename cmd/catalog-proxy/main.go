// Package main is the entry point for catalog-proxy.
package main

import (
	"os"

	"github.com/mjtech-br/catalog-proxy/cmd/catalog-proxy/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
