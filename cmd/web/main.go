// @title           Taskify API
// @version         1.0
// @description     Рабочие пространства, проекты, команды и задачи с ролевым доступом и лимитами тарифов.
// @contact.name    Taskify
// @contact.email   support@taskify.test
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization

package main

import "taskify_backend/internal/app"

func main() {
	app.Run()
}
