package main

import "github.com/pagelens/backend/cli"

func main() {
	cli.Execute()
}
