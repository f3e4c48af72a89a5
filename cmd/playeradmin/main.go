package main

import "github.com/mcoot/playeradmin/internal/cli"

func main() {
	cli.Execute()
}
