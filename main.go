package main

import "github.com/avikothari/bling/cmd"

func main() {
	cmd.Execute()
}
