package main

import "seller-service/cmd"

func main() {
	cmd.Execute()
}
