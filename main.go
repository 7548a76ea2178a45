package main

import "github.com/rnwolfe/agenda/cmd"

func main() {
	cmd.Execute()
}
