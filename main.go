package main

import "github.com/rebornlabs/wastelog/cmd"

func main() {
	cmd.Execute()
}
