package main

import "travelpro/cmd"

func main() {
	cmd.Execute()
}
