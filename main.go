package main

import "github.com/bgraf/randomimage/cmd"

func main() {
	cmd.Execute()
}
