package main

import "github.com/frahmantamala/trackit/cmd"

func main() {
	cmd.Execute()
}
