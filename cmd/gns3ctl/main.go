package main

import (
	"os"

	"github.com/hashicorp-forge/gns3ctl/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
