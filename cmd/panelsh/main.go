package main

//go-build: CGO_ENABLED=0

import (
	"github.com/robotalks/reaction.go/pkg/env"
	"github.com/robotalks/reaction.go/pkg/shell"
)

func init() {
	env.SetupFlags()
}

func main() {
	shell.Main()
}
