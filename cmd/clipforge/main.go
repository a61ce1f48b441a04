package main

import "github.com/Dreiko98/clipforge/internal/cli"

func main() {
	cli.Main()
}
