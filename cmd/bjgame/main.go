package main

import (
	"github.com/cardroom/blackjack-go/internal/cli"
)

func main() {
	cli.Execute()
}
