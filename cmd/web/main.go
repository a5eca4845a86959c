package main

import "smartmatch_backend/internal/app"

func main() {
	app.Run()
}
