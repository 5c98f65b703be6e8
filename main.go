package main

import (
	// Time zones must be available in minimal containers
	_ "time/tzdata"

	"github.com/spendwise/backend/internal/cli"
)

func main() {
	cli.Execute()
}
