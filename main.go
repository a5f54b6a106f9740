// Package main Memberships API
//
//	@title			Memberships API
//	@version		1.0.0
//	@description	Manages recurring memberships, their billing periods and export jobs
//
//	@contact.name	API Support
//
//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html
//
//	@host			localhost:3000
//	@BasePath		/api/v1
package main

import "github.com/apiarycd/memberships/internal"

//go:generate swag init --parseDependency --outputTypes go -g ./main.go -o ./internal/server/docs

func main() {
	internal.Run()
}
