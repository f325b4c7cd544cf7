// @title                       Task CRM API
// @version                     1.0
// @description                 Users, tasks and customers with role-scoped visibility.
// @BasePath                    /api/v1
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import "github.com/99minutos/task-crm/cmd/taskcrm/cmd"

func main() {
	cmd.Execute()
}
