package main

import "github.com/wp-hooks/parser/internal/cli"

func main() {
	cli.Execute()
}
