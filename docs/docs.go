// Package docs holds the OpenAPI description of the JSON API, registered
// with swag for the /swagger UI. Regenerate with `swag init -g cmd/server/main.go`.
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
        "/amigos": {
            "get": {
                "description": "Returns every friend ordered by id. Supports weak ETag via If-None-Match and may return 304.",
                "produces": ["application/json"],
                "tags": ["Amigos"],
                "summary": "List friends",
                "operationId": "listFriends",
                "parameters": [
                    {"type": "string", "description": "Return 304 if ETag matches", "name": "If-None-Match", "in": "header"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Amigo"}},
                        "headers": {"ETag": {"type": "string", "description": "Weak ETag for current result"}}
                    },
                    "304": {"description": "Not Modified", "schema": {"type": "string"}},
                    "500": {"description": "Erro ao buscar amigos", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/amigos/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Amigos"],
                "summary": "Get a friend",
                "operationId": "getFriend",
                "parameters": [
                    {"minimum": 1, "type": "integer", "description": "Friend ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Amigo"}},
                    "400": {"description": "Invalid id", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Amigo não encontrado.", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/jogos": {
            "get": {
                "description": "Returns every game ordered by id, each with its owner (\"dono\"). Supports weak ETag.",
                "produces": ["application/json"],
                "tags": ["Jogos"],
                "summary": "List games",
                "operationId": "listGames",
                "parameters": [
                    {"type": "string", "description": "Return 304 if ETag matches", "name": "If-None-Match", "in": "header"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Jogo"}},
                        "headers": {"ETag": {"type": "string", "description": "Weak ETag for current result"}}
                    },
                    "304": {"description": "Not Modified", "schema": {"type": "string"}},
                    "500": {"description": "Erro ao buscar jogos", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/jogos/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Jogos"],
                "summary": "Get a game",
                "operationId": "getGame",
                "parameters": [
                    {"minimum": 1, "type": "integer", "description": "Game ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Jogo"}},
                    "400": {"description": "Invalid id", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Jogo não encontrado.", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/emprestimos": {
            "get": {
                "description": "Returns every loan ordered by id with \"jogo\", \"amigo\" and \"emAndamento\". \"dataFim\" is omitted while the loan is open.",
                "produces": ["application/json"],
                "tags": ["Emprestimos"],
                "summary": "List loans",
                "operationId": "listLoans",
                "parameters": [
                    {"type": "string", "description": "Return 304 if ETag matches", "name": "If-None-Match", "in": "header"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Emprestimo"}},
                        "headers": {"ETag": {"type": "string", "description": "Weak ETag for current result"}}
                    },
                    "304": {"description": "Not Modified", "schema": {"type": "string"}},
                    "500": {"description": "Erro ao buscar emprestimos", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/emprestimos/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Emprestimos"],
                "summary": "Get a loan",
                "operationId": "getLoan",
                "parameters": [
                    {"minimum": 1, "type": "integer", "description": "Loan ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Emprestimo"}},
                    "400": {"description": "Invalid id", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Empréstimo não encontrado.", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.Amigo": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "nome": {"type": "string"},
                "email": {"type": "string"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "domain.Jogo": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "titulo": {"type": "string"},
                "plataforma": {"type": "string"},
                "amigoId": {"type": "integer"},
                "dono": {"$ref": "#/definitions/domain.Amigo"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "domain.Emprestimo": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "jogoId": {"type": "integer"},
                "amigoId": {"type": "integer"},
                "dataInicio": {"type": "string", "example": "2025-01-10"},
                "dataFim": {"type": "string", "example": "2025-02-01"},
                "emAndamento": {"type": "boolean"},
                "jogo": {"$ref": "#/definitions/domain.Jogo"},
                "amigo": {"$ref": "#/definitions/domain.Amigo"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "erro": {"type": "string", "example": "Erro ao buscar amigos"},
                "request_id": {"type": "string", "example": "123e4567-e89b-12d3-a456-426614174000"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Game Loans API",
	Description:      "Read-only JSON API over friends, games and loans.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
