package main

import "github.com/vibast-solutions/ms-go-menu/cmd"

func main() {
	cmd.Execute()
}
