package main

//go:generate swag init -g cmd/simulator/main.go -o docs

// @title           Compounding Simulator API
// @version         0.1.0
// @description     Trading strategy expectancy, Kelly sizing, and compounding projections.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
