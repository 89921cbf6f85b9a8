package main

import "github.com/Alan-Collins/SpellTower-solver/internal/cli"

func main() {
	cli.Execute()
}
