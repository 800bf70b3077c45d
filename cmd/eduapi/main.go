package main

import "github.com/educonnect/educonnect/cmd/eduapi/cmd"

func main() {
	cmd.Execute()
}
