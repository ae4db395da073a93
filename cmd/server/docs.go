package main

//go:generate swag init -g cmd/server/main.go -o docs

// @title           Astrolabe API
// @version         0.1.0
// @description     Offline planetary positions and daily horoscope content.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
