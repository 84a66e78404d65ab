package main

import "github.com/persona-dev/persona/internal/cli"

func main() {
	cli.Execute()
}
