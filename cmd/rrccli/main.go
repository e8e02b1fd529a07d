package main

//go-build: CGO_ENABLED=0

import (
	"github.com/robotalks/rrc.go/pkg/cli/sh"

	_ "github.com/robotalks/rrc.go/pkg/cli/cmds/board"
)

func main() {
	sh.Main()
}
