package main

import (
	"os"

	"code-intelligence.com/bincheck/internal/cmd/root"
)

func main() {
	os.Exit(root.Execute())
}
