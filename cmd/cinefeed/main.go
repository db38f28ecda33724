package main

import "github.com/yjkwon/cinefeed/cmd/cinefeed/cmd"

func main() {
	cmd.Execute()
}
