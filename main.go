package main

import "streamable/cmd"

func main() {
	cmd.Execute()
}
