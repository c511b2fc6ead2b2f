package main

import "github.com/hersh/termtris/internal/cli"

func main() {
	cli.Execute()
}
