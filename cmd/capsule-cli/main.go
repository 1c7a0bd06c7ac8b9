package main

import "github.com/esti34/capsule/cmd/capsule-cli/cmd"

func main() {
	cmd.Execute()
}
