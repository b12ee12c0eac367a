package main

import "github.com/mynades/mynades/cmd"

func main() {
	cmd.Execute()
}
