// Package main provides the lineaged CLI.
package main

import (
	"github.com/mesh-intelligence/lineage/internal/cli"
)

func main() {
	cli.Execute()
}
