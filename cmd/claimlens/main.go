package main

import "github.com/MeKo-Tech/claimlens/cmd/claimlens/cmd"

func main() {
	cmd.Execute()
}
