package main

import "suilog/internal/app"

// @title Suilog API
// @version 1.0
// @description Task tracking with contribution scoring and on-chain completion proofs
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
