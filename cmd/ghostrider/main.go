package main

import "github.com/ghostrider-app/ghostrider/internal/cli"

func main() {
	cli.Execute()
}
