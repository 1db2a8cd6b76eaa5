package main

import "github.com/priplot/priplot/cmd"

func main() {
	cmd.Execute()
}
