package main

import "github.com/fakeyudi/cdd/cmd"

func main() {
	cmd.Execute()
}
