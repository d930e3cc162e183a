package main

import (
	"github.com/foomo/assets/cmd"
)

func main() {
	cmd.Execute()
}
