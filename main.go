package main

import "github.com/mj1618/openfiles/cmd"

func main() {
	cmd.Execute()
}
