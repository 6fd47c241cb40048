package main

import (
	cmd "github.com/rohmanhakim/sitefetch/internal/cli"
)

func main() {
	cmd.Execute()
}
