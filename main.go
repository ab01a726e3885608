package main

import "github.com/truongaus/gotruss/cmd"

func main() {
	cmd.Execute()
}
