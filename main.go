package main

import "github.com/KaramelBytes/resultscope/cmd"

func main() {
	cmd.Execute()
}
