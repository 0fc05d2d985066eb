// Package docs registers the OpenAPI document served under /swagger.
package docs

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
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/balance/load": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["Balance"],
                "summary": "Load balance",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/services.LoadBalanceRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.Result"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/services.Result"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/services.Result"}}
                }
            }
        },
        "/balance/transfer": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["Balance"],
                "summary": "Transfer balance",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/services.TransferBalanceRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.Result"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/services.Result"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/services.Result"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/services.Result"}}
                }
            }
        },
        "/statements/load-fund": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Statements"],
                "summary": "List load fund transactions",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/services.Result"}}}
            }
        },
        "/statements/load-fund/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Statements"],
                "summary": "Get load fund transaction",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/services.Result"}}}
            }
        },
        "/statements/balance-transfer": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Statements"],
                "summary": "List balance transfer statements",
                "parameters": [
                    {"type": "integer", "name": "page", "in": "query", "required": true},
                    {"type": "integer", "name": "size", "in": "query", "required": true},
                    {"type": "string", "enum": ["All", "Debit", "Credit"], "name": "cashFlow", "in": "query", "required": true},
                    {"type": "integer", "name": "startDate", "in": "query"},
                    {"type": "integer", "name": "endDate", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/services.Result"}}}
            }
        },
        "/notifications": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Notifications"],
                "summary": "List notifications",
                "parameters": [
                    {"type": "integer", "name": "page", "in": "query", "required": true},
                    {"type": "integer", "name": "size", "in": "query", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/services.Result"}}}
            }
        },
        "/bank-accounts": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Bank Accounts"],
                "summary": "List linked bank accounts",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/services.Result"}}}
            }
        }
    },
    "definitions": {
        "services.Result": {
            "type": "object",
            "properties": {"statusCode": {"type": "integer"}, "message": {"type": "string"}}
        },
        "services.LoadBalanceRequest": {
            "type": "object",
            "required": ["bankAccountId", "amount", "purpose", "remarks"],
            "properties": {
                "bankAccountId": {"type": "integer"},
                "amount": {"type": "integer", "minimum": 1},
                "purpose": {"type": "string"},
                "remarks": {"type": "string"}
            }
        },
        "services.TransferBalanceRequest": {
            "type": "object",
            "required": ["receiverEmail", "amount", "purpose", "remarks"],
            "properties": {
                "receiverEmail": {"type": "string"},
                "amount": {"type": "integer", "minimum": 1},
                "purpose": {"type": "string"},
                "remarks": {"type": "string", "maxLength": 50}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Easy Pay Wallet API",
	Description:      "Wallet balance loading, peer transfers and statements",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
