package main

import "github.com/BruksfildServices01/marketplace/cmd/marketctl/commands"

func main() {
	commands.Execute()
}
