package main

import "github.com/matthieukhl/ordersynth/internal/cmd"

func main() {
	cmd.Execute()
}
