package main

import "github.com/alejomeek/cotizaciones/internal/app"

func main() {
	app.Run()
}
