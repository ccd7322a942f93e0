package main

import "github.com/hdlorbit/orbit/internal/cli"

func main() {
	cli.Execute()
}
