package main

import "github.com/kozaktomas/physiognomy/cmd"

func main() {
	cmd.Execute()
}
