// Package docs registers the swagger document served under /swagger.
// It is maintained by hand alongside the handler annotations.
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
        "/addresses": {
            "get": {
                "produces": ["application/json"],
                "tags": ["addresses"],
                "summary": "List addresses ordered by ZIP code, state, city, street and house number",
                "parameters": [
                    {"type": "integer", "description": "Page size (default 50, max 500)", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "Rows to skip", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Address"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["addresses"],
                "summary": "Register an address",
                "parameters": [
                    {"description": "Address components", "name": "address", "in": "body", "required": true, "schema": {"$ref": "#/definitions/address.Record"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Address"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/addresses/exists": {
            "get": {
                "produces": ["application/json"],
                "tags": ["addresses"],
                "summary": "Check whether an address is already registered",
                "parameters": [
                    {"type": "string", "name": "house_number", "in": "query", "required": true},
                    {"type": "string", "name": "direction_prefix", "in": "query"},
                    {"type": "string", "name": "street_name", "in": "query", "required": true},
                    {"type": "string", "name": "street_type", "in": "query"},
                    {"type": "string", "name": "direction_suffix", "in": "query"},
                    {"type": "string", "name": "unit", "in": "query"},
                    {"type": "string", "name": "city", "in": "query", "required": true},
                    {"type": "string", "name": "state_code", "in": "query", "required": true},
                    {"type": "string", "name": "postal_code", "in": "query", "required": true},
                    {"type": "string", "name": "postal_plus4", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.ExistsResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/addresses/validate": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["addresses"],
                "summary": "Validate an address without storing it",
                "parameters": [
                    {"description": "Address components", "name": "address", "in": "body", "required": true, "schema": {"$ref": "#/definitions/address.Record"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.ValidationResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/addresses/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["addresses"],
                "summary": "Fetch an address",
                "parameters": [
                    {"type": "integer", "description": "Address id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Address"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["addresses"],
                "summary": "Replace every component of an address",
                "parameters": [
                    {"type": "integer", "description": "Address id", "name": "id", "in": "path", "required": true},
                    {"description": "Address components", "name": "address", "in": "body", "required": true, "schema": {"$ref": "#/definitions/address.Record"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Address"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["addresses"],
                "summary": "Delete an address",
                "parameters": [
                    {"type": "integer", "description": "Address id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "address.Record": {
            "type": "object",
            "properties": {
                "house_number": {"type": "string"},
                "direction_prefix": {"type": "string"},
                "street_name": {"type": "string"},
                "street_type": {"type": "string"},
                "direction_suffix": {"type": "string"},
                "unit": {"type": "string"},
                "city": {"type": "string"},
                "state_code": {"type": "string"},
                "postal_code": {"type": "string"},
                "postal_plus4": {"type": "string"}
            }
        },
        "models.Address": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "house_number": {"type": "string"},
                "direction_prefix": {"type": "string"},
                "street_name": {"type": "string"},
                "street_type": {"type": "string"},
                "direction_suffix": {"type": "string"},
                "unit": {"type": "string"},
                "city": {"type": "string"},
                "state_code": {"type": "string"},
                "postal_code": {"type": "string"},
                "postal_plus4": {"type": "string"},
                "display": {"type": "string"}
            }
        },
        "handler.FieldErrorResponse": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handler.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "fields": {"type": "array", "items": {"$ref": "#/definitions/handler.FieldErrorResponse"}}
            }
        },
        "handler.ValidationResponse": {
            "type": "object",
            "properties": {
                "valid": {"type": "boolean"},
                "display": {"type": "string"},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/handler.FieldErrorResponse"}}
            }
        },
        "handler.ExistsResponse": {
            "type": "object",
            "properties": {
                "exists": {"type": "boolean"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Address Registry API",
	Description:      "Validates, normalizes and stores unique US postal addresses.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
