package main

import (
	"catlog/internal/cli"
)

func main() {
	cli.Execute()
}
