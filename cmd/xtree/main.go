package main

import "github.com/arl/xtree/cmd/xtree/cmd"

func main() {
	cmd.Execute()
}
