package main

import (
	"canlog/cmd/client/cmd"
)

func main() {
	cmd.Execute()
}
