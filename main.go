package main

import "github.com/theirongolddev/budgettdb/cmd"

func main() {
	cmd.Execute()
}
