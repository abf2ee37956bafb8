package main

import "thoreinstein.com/reposcan/cmd"

func main() {
	cmd.Execute()
}
