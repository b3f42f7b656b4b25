package main

import (
	"os"

	"github.com/Udyana30/rsup-ppk-sub000/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
