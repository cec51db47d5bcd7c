package main

import "github.com/chriserin/gsteps/cmd"

func main() {
	cmd.Execute()
}
