// Package api registers the OpenAPI description of the backend with swag.
//
// Run "make docs" to regenerate the full description from the handler
// annotations with swag init.
package api

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {"get": {"tags": ["General"], "summary": "API root", "responses": {"200": {"description": "OK"}}}},
        "/health": {"get": {"tags": ["General"], "summary": "Get health", "responses": {"204": {"description": "No Content"}, "500": {"description": "Internal Server Error"}}}},
        "/version": {"get": {"tags": ["General"], "summary": "API version", "responses": {"200": {"description": "OK"}}}},
        "/process-sms": {"post": {"tags": ["Messages"], "summary": "Process message", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "422": {"description": "Unprocessable Entity"}, "500": {"description": "Internal Server Error"}}}},
        "/transactions": {"get": {"tags": ["Transactions"], "summary": "Get transactions", "parameters": [{"type": "integer", "name": "limit", "in": "query"}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/transactions/export": {"get": {"tags": ["Transactions"], "summary": "Export transactions", "produces": ["text/csv"], "parameters": [{"type": "string", "name": "month", "in": "query"}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/transactions/{id}": {"delete": {"tags": ["Transactions"], "summary": "Delete transaction", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}},
        "/alerts": {"get": {"tags": ["Alerts"], "summary": "Get alerts", "parameters": [{"type": "integer", "name": "limit", "in": "query"}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/budgets": {
            "get": {"tags": ["Budgets"], "summary": "Get budgets", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Budgets"], "summary": "Set budget", "consumes": ["application/json"], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/match-rules": {
            "get": {"tags": ["MatchRules"], "summary": "Get matchRules", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["MatchRules"], "summary": "Create matchRule", "consumes": ["application/json"], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/match-rules/{id}": {"delete": {"tags": ["MatchRules"], "summary": "Delete matchRule", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}}},
        "/summary": {"get": {"tags": ["Reports"], "summary": "Get summary", "parameters": [{"type": "string", "name": "month", "in": "query"}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/stats": {"get": {"tags": ["Reports"], "summary": "Get statistics", "parameters": [{"type": "string", "name": "month", "in": "query"}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/events": {"get": {"tags": ["Events"], "summary": "Stage events", "produces": ["text/event-stream"], "responses": {"200": {"description": "OK"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "",
	Host:             "",
	BasePath:         "",
	Schemes:          []string{},
	Title:            "",
	Description:      "",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
