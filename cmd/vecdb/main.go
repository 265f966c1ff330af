package main

import "github.com/agenttools/vecdb/internal/cli"

func main() {
	cli.Execute()
}
