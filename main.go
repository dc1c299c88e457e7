package main

import (
	"github.com/jjtimmons/tdesign/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
