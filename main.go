package main

import "artisanmart/cmd"

func main() {
	cmd.Execute()
}
