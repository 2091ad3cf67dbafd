package main

import (
	"github.com/haldis-labs/archivehdr/cmd"
)

func main() {
	cmd.Execute()
}
