package main

import (
	"clementus360/meeting-agent/cli"
	"clementus360/meeting-agent/config"
	"context"
)

func main() {
	if err := cli.NewRootCmd().ExecuteContext(context.Background()); err != nil {
		config.Logger.Fatal(err)
	}
}
