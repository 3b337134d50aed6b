package main

import "plume/internal/cmd"

func main() {
	cmd.Run()
}
