// cmd/main.go
package main

import (
	"active-teams-api/app"
)

// @title           Active Teams API
// @version         1.0
// @description     Church attendance tracking backend: people, events, check-ins, cell groups and follow-up tasks.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
