package main

import "github.com/nick-vanduijn/synthex/pkg/cli"

func main() {
	cli.Execute()
}
