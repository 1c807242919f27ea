package main

import "github.com/fairlane-hq/fairlane/internal/cli"

func main() {
	cli.Execute()
}
