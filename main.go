package main

import "github.com/xvierd/pomo/cmd"

func main() {
	cmd.Execute()
}
