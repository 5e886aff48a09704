package main

import (
	_ "aulaplus/docs"
	"aulaplus/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           AulaPlus Billing API
// @version         1.0
// @description     Course checkout, Mercado Pago webhook reconciliation and enrollment extension backed by DynamoDB.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

func main() {
	routes.Run()
}
