package main

import "github.com/wuntoguo/word-assistant/cmd/client/cmd"

func main() {
	cmd.Execute()
}
