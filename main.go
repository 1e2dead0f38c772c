package main

import "learnlog/cmd"

func main() {
	cmd.Execute()
}
