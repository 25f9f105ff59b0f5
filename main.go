package main

import "pet-sitter.com/pet-sitter/cmd"

func main() {
	cmd.Execute()
}
