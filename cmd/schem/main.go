package main

import "schem/cmd/schem/cmd"

func main() {
	cmd.Execute()
}
