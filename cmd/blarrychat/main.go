package main

import "github.com/diogo/blarrychat/internal/commands"

func main() {
	commands.Execute()
}
