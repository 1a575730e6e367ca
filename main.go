package main

import "github.com/nikogura/portfolio-chat/cmd"

func main() {
	cmd.Execute()
}
