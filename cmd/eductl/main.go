package main

import "github.com/educonnect/educonnect/cmd/eductl/cmd"

func main() {
	cmd.Execute()
}
