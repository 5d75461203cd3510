package main

import (
	_ "github.com/aretw0/actionserver/internal/demo"
)

func main() {
	Execute()
}
