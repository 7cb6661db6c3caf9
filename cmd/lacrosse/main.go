package main

var version = "develop"

func isProduction() bool {
	return version != "develop"
}

func main() {
	Execute()
}
