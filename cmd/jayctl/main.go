package main

import "github.com/ouwenyi03/Jay-Agent/cmd/jayctl/cmd"

func main() {
	cmd.Execute()
}
