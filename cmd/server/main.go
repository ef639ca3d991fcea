package main

import "gripinvest/internal/app"

// @title           Grip Invest API
// @version         1.0
// @description     Mini investment platform: accounts, password resets, products, investments.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
