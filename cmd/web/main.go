package main

import "workrate_backend/internal/app"

func main() {
	app.Run()
}
