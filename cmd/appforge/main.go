package main

import "appforge/internal/cli"

func main() {
	cli.Execute()
}
