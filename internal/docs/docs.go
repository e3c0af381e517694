// Package docs holds the OpenAPI description served under /swagger.
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
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register an account",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Account registered and token generated", "schema": {"$ref": "#/definitions/handlers.AuthResponse"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "409": {"description": "Phone already registered", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Authenticated", "schema": {"$ref": "#/definitions/handlers.AuthResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/profile": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["profile"],
                "summary": "Get profile",
                "responses": {
                    "200": {"description": "Profile", "schema": {"$ref": "#/definitions/handlers.UserResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["profile"],
                "summary": "Update profile",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.UpdateProfileRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated profile", "schema": {"$ref": "#/definitions/handlers.UserResponse"}}
                }
            }
        },
        "/profile/audit-logs": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["profile"],
                "summary": "List audit logs",
                "parameters": [
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "page_size", "in": "query"}
                ],
                "responses": {"200": {"description": "Audit logs"}}
            }
        },
        "/onboarding": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["onboarding"],
                "summary": "Complete onboarding",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.OnboardingRequest"}}
                ],
                "responses": {
                    "200": {"description": "Limits and sync summary"},
                    "502": {"description": "Messages could not be read", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/budget/limits": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["budget"],
                "summary": "Get budget limits",
                "responses": {"200": {"description": "Limits"}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["budget"],
                "summary": "Update budget limits",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.UpdateLimitsRequest"}}
                ],
                "responses": {"200": {"description": "Stored limits and current alerts"}}
            }
        },
        "/budget/alerts": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["budget"],
                "summary": "Get budget alerts",
                "responses": {"200": {"description": "Alerts, general first"}}
            }
        },
        "/sync": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["sync"],
                "summary": "Run a sync",
                "parameters": [
                    {"type": "string", "enum": ["full", "incremental"], "name": "mode", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Sync summary"},
                    "502": {"description": "Messages could not be read", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/sync/status": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["sync"],
                "summary": "Sync status",
                "responses": {
                    "200": {"description": "Checkpoint"},
                    "404": {"description": "No sync has completed yet", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/transactions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "List transactions",
                "parameters": [
                    {"type": "string", "enum": ["weekly", "monthly"], "name": "period", "in": "query"},
                    {"type": "string", "name": "category", "in": "query"},
                    {"type": "string", "name": "search", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "page_size", "in": "query"}
                ],
                "responses": {"200": {"description": "Paginated history"}}
            }
        },
        "/spending/overview": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["spending"],
                "summary": "Spending overview",
                "parameters": [
                    {"type": "string", "enum": ["weekly", "monthly"], "name": "period", "in": "query"}
                ],
                "responses": {"200": {"description": "Overview"}}
            }
        },
        "/pipeline/messages": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pipeline"],
                "summary": "Upload messages",
                "parameters": [
                    {"type": "string", "name": "X-API-Key", "in": "header", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.StageMessagesRequest"}}
                ],
                "responses": {
                    "202": {"description": "Batch accepted", "schema": {"$ref": "#/definitions/handlers.StageMessagesResponse"}},
                    "401": {"description": "Invalid API key", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.ErrorDetail": {
            "type": "object",
            "properties": {"code": {"type": "string"}, "message": {"type": "string"}}
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"$ref": "#/definitions/handlers.ErrorDetail"}}
        },
        "handlers.RegisterRequest": {
            "type": "object",
            "required": ["password", "phone"],
            "properties": {
                "name": {"type": "string", "maxLength": 100},
                "password": {"type": "string", "maxLength": 128, "minLength": 8},
                "phone": {"type": "string"}
            }
        },
        "handlers.LoginRequest": {
            "type": "object",
            "required": ["password", "phone"],
            "properties": {"password": {"type": "string"}, "phone": {"type": "string"}}
        },
        "handlers.UpdateProfileRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {"name": {"type": "string", "maxLength": 100}}
        },
        "handlers.UserResponse": {
            "type": "object",
            "properties": {
                "balance": {"type": "integer"},
                "balance_updated_at": {"type": "string"},
                "id": {"type": "string"},
                "name": {"type": "string"},
                "phone": {"type": "string"}
            }
        },
        "handlers.AuthResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "user": {"$ref": "#/definitions/handlers.UserResponse"}
            }
        },
        "handlers.OnboardingRequest": {
            "type": "object",
            "required": ["general_limit"],
            "properties": {"general_limit": {"type": "integer"}}
        },
        "handlers.UpdateLimitsRequest": {
            "type": "object",
            "properties": {
                "agent": {"type": "integer", "minimum": 0},
                "bank_transfer": {"type": "integer", "minimum": 0},
                "bundle": {"type": "integer", "minimum": 0},
                "general": {"type": "integer", "minimum": 0},
                "merchant_payment": {"type": "integer", "minimum": 0},
                "money_transfer": {"type": "integer", "minimum": 0},
                "other": {"type": "integer", "minimum": 0},
                "utility": {"type": "integer", "minimum": 0}
            }
        },
        "handlers.UploadedMessage": {
            "type": "object",
            "required": ["body", "sender", "timestamp"],
            "properties": {
                "body": {"type": "string"},
                "sender": {"type": "string", "maxLength": 64},
                "timestamp": {"type": "string"}
            }
        },
        "handlers.StageMessagesRequest": {
            "type": "object",
            "required": ["messages", "phone"],
            "properties": {
                "messages": {"type": "array", "maxItems": 1000, "minItems": 1, "items": {"$ref": "#/definitions/handlers.UploadedMessage"}},
                "phone": {"type": "string"}
            }
        },
        "handlers.StageMessagesResponse": {
            "type": "object",
            "properties": {"received": {"type": "integer"}, "staged": {"type": "integer"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "MoMo Press API",
	Description:      "MoMo Press reads MTN Mobile Money SMS, records the transactions they describe and tracks monthly budgets.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
