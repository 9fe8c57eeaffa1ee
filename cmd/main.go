package main

import "pomopro/internal/cli"

func main() {
	cli.Execute()
}
