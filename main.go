package main

import "github.com/theirongolddev/costplan/cmd"

func main() {
	cmd.Execute()
}
