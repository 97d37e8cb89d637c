// Package docs registers the OpenAPI description served under /swagger/.
// Regenerate with `swag init -g cmd/server/main.go` after changing handler annotations.
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
        "/users/": {"get": {"tags": ["users"], "summary": "List users", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}},
        "/user/{id}": {"get": {"tags": ["users"], "summary": "Get user by id with its spots", "produces": ["application/json"], "parameters": [{"type": "integer", "description": "User ID", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}},
        "/user/": {"post": {"tags": ["users"], "summary": "Register a new user", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}, "422": {"description": "Unprocessable Entity"}}}},
        "/user/login/": {"post": {"tags": ["users"], "summary": "Check user credentials", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "404": {"description": "Not Found"}}}},
        "/spots/": {"get": {"tags": ["spots"], "summary": "List spots", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}},
        "/spot/{id}": {"get": {"tags": ["spots"], "summary": "Get spot by id", "produces": ["application/json"], "parameters": [{"type": "integer", "description": "Spot ID", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/spot/update/": {"post": {"tags": ["spots"], "summary": "Reserve a spot", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}, "422": {"description": "Unprocessable Entity"}}}},
        "/spot/checkIn/": {"post": {"tags": ["spots"], "summary": "Check in to a reserved spot", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}}},
        "/spot/": {"post": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Create a spot attached to an owner", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "422": {"description": "Unprocessable Entity"}}}},
        "/spot/new_empty/": {"get": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Create an empty spot", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}},
        "/spot/occupancy/": {"post": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Record whether a vehicle is parked on a spot", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}}
    },
    "securityDefinitions": {
        "BearerAuth": {"description": "Type \"Bearer\" followed by a space and an admin JWT.", "type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Parking Spot Reservation API",
	Description:      "Reserve, check in to and release parking spots.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
