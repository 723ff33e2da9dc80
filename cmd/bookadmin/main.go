package main

import "bookadmin/cmd/bookadmin/command"

func main() {
	command.Execute()
}
