package main

import (
	"github.com/foomo/autositemap/cmd"
)

func main() {
	cmd.Execute()
}
