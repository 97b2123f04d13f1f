package main

import "github.com/Urethramancer/asm386/internal/cli"

func main() {
	cli.Execute()
}
