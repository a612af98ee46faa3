package main

import "github.com/viant/taskmgr/cmd/taskmgr/commands"

func main() {
	commands.Execute()
}
