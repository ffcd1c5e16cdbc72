package main

import "candlechart/internal/cli"

func main() {
	cli.Execute()
}
