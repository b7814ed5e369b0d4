// Command storefront runs the demo shop API and its catalog maintenance tasks.
//
// @title                      Storefront API
// @version                    1.0
// @description                Demo storefront that feeds a customer-data tag through its data layer.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
//
//go:generate swag init -g cmd/storefront/main.go -d ../../ -o ../../docs
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
