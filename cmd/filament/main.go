package main

import "github.com/yourusername/filament/internal/cli"

func main() {
	cli.Execute()
}
