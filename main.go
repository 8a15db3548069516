package main

import "chinook/cmd"

func main() {
	cmd.Execute()
}
