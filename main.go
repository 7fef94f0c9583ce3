package main

import "book-catalog/cmd"

func main() {
	cmd.Execute()
}
