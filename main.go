package main

import "github.com/loaishar/RealEstateManager/cmd"

func main() {
	cmd.Execute()
}
