package main

import "github.com/haneul-labs/nurical/internal/cli"

func main() {
	cli.Execute()
}
