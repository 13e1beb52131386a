package main

import (
	"github.com/Kofidell4545/pluseposter/cmd"
)

func main() {
	cmd.Execute()
}
