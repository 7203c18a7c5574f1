package main

import "github.com/jfmyers9/lastexport/cmd"

func main() {
	cmd.Execute()
}
