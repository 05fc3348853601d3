package main

import "github.com/traderndumia/propfire/internal/cli"

func main() {
	cli.Execute()
}
