package main

import "github.com/massinglab/gomassing/cmd"

func main() {
	cmd.Execute()
}
