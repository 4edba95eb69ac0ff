package main

import "github.com/metamemelord/Mockerino/cmd"

func main() {
	cmd.Execute()
}
