// Package docs holds the OpenAPI document of the task CRM API and registers
// it with swag so echo-swagger can serve it.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
	"schemes": {{ marshal .Schemes }},
	"swagger": "2.0",
	"info": {
		"description": "{{escape .Description}}",
		"title": "{{.Title}}",
		"contact": {},
		"version": "{{.Version}}"
	},
	"host": "{{.Host}}",
	"basePath": "{{.BasePath}}",
	"paths": {
		"/hello-world": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"misc"
				],
				"summary": "Greeting",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					}
				}
			}
		},
		"/auth/register": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"auth"
				],
				"summary": "Register a new user",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.registerRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					}
				}
			}
		},
		"/auth/login": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"auth"
				],
				"summary": "Login",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.loginRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"429": {
						"description": "Too Many Requests",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					}
				}
			}
		},
		"/task": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"tasks"
				],
				"summary": "Create a task for a user",
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.createTaskRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					}
				}
			},
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"tasks"
				],
				"summary": "List tasks",
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "Status substring",
						"name": "status",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Title substring (case-sensitive)",
						"name": "title",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					}
				}
			}
		},
		"/task/{id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"tasks"
				],
				"summary": "Get a task by id",
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "Task id",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					}
				}
			},
			"put": {
				"produces": [
					"application/json"
				],
				"tags": [
					"tasks"
				],
				"summary": "Update a task",
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "Task id",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Request body",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.updateTaskRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					}
				}
			},
			"delete": {
				"produces": [
					"application/json"
				],
				"tags": [
					"tasks"
				],
				"summary": "Delete a task",
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "Task id",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					}
				}
			}
		},
		"/customer": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"customers"
				],
				"summary": "Create a customer",
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.createCustomerRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					}
				}
			},
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"customers"
				],
				"summary": "List customers",
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "Name substring (case-insensitive)",
						"name": "customerName",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					}
				}
			}
		},
		"/customer/create-task": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"customers"
				],
				"summary": "Create a task bound to a customer and a user",
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.createCustomerTaskRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					}
				}
			}
		},
		"/customer/assign-task/{customerId}/{taskId}": {
			"put": {
				"produces": [
					"application/json"
				],
				"tags": [
					"customers"
				],
				"summary": "Attach a task to a customer",
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "Customer id",
						"name": "customerId",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "Task id",
						"name": "taskId",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/response.Envelope"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"handler.registerRequest": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"password": {
					"type": "string"
				},
				"role": {
					"type": "string",
					"enum": [
						"ADMIN",
						"USER"
					]
				}
			},
			"required": [
				"email",
				"name",
				"password",
				"role"
			]
		},
		"handler.loginRequest": {
			"type": "object",
			"properties": {
				"email": {
					"type": "string"
				},
				"password": {
					"type": "string"
				}
			},
			"required": [
				"email",
				"password"
			]
		},
		"handler.createTaskRequest": {
			"type": "object",
			"properties": {
				"title": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"assignedUserEmail": {
					"type": "string"
				},
				"status": {
					"type": "string",
					"enum": [
						"TODO",
						"IN_PROGRESS",
						"DONE"
					]
				},
				"dueDate": {
					"type": "string",
					"format": "date-time"
				}
			},
			"required": [
				"assignedUserEmail",
				"description",
				"status",
				"title"
			]
		},
		"handler.updateTaskRequest": {
			"type": "object",
			"properties": {
				"title": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"status": {
					"type": "string",
					"enum": [
						"TODO",
						"IN_PROGRESS",
						"DONE"
					]
				}
			},
			"required": [
				"status"
			]
		},
		"handler.createCustomerRequest": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"company": {
					"type": "string"
				},
				"contact": {
					"type": "integer",
					"minimum": 10
				}
			},
			"required": [
				"company",
				"contact",
				"email",
				"name"
			]
		},
		"handler.createCustomerTaskRequest": {
			"type": "object",
			"properties": {
				"title": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"customerName": {
					"type": "string"
				},
				"status": {
					"type": "string",
					"enum": [
						"TODO",
						"IN_PROGRESS",
						"DONE"
					]
				},
				"assignedUserEmail": {
					"type": "string"
				},
				"dueDate": {
					"type": "string",
					"format": "date-time"
				}
			},
			"required": [
				"assignedUserEmail",
				"customerName",
				"description",
				"status",
				"title"
			]
		},
		"response.Envelope": {
			"type": "object",
			"properties": {
				"success": {
					"type": "boolean"
				},
				"message": {
					"type": "string"
				},
				"data": {},
				"statusCode": {
					"type": "integer"
				}
			}
		}
	},
	"securityDefinitions": {
		"BearerAuth": {
			"type": "apiKey",
			"name": "Authorization",
			"in": "header"
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Task CRM API",
	Description:      "Users, tasks and customers with role-scoped visibility.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
