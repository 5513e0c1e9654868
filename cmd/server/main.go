package main // Entry point package

import "github.com/iliyamo/three-level-auth/internal/cli"

func main() {
	cli.Execute()
}
