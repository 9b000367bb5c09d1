package main

import "github.com/jsphweid/keyplayer/cmd"

func main() {
	cmd.Execute()
}
