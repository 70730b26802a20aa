package main

import (
	"github.com/opfobo/taxmate-sub000/internal/pkg/app"
	"log"
)

func main() {
	if err := app.New(); err != nil {
		log.Fatal(err)
	}
}
