package main

import "github.com/agmlego/novatime/cmd"

func main() {
	cmd.Execute()
}
