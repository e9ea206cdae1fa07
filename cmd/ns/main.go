package main

import "github.com/Cortelete/tcc/cmd/ns/root"

func main() {
	root.Execute()
}
