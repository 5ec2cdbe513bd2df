package main

import "github.com/moyu-x/photo-importer/cmd"

func main() {
	cmd.Execute()
}
