// Package swagger registers the API description served at /swagger. The
// template is maintained by hand; regenerate with swag init if the annotated
// controllers drift from it.
package swagger

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
        "/ping": {
            "get": {
                "produces": ["application/json"],
                "tags": ["test"],
                "summary": "Endpoint just pings the server",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/rooms": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["rooms"],
                "summary": "Creates a new room",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/rooms/join": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["rooms"],
                "summary": "Joins a room by code",
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/rooms/{room_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["rooms"],
                "summary": "Gives info of a room",
                "parameters": [
                    {"type": "string", "name": "room_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/rooms/{room_id}/expansions": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["rooms"],
                "summary": "Updates a room's expansions",
                "parameters": [
                    {"type": "string", "name": "room_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/rooms/code/{room_code}/qr": {
            "get": {
                "produces": ["image/png"],
                "tags": ["rooms"],
                "summary": "Join QR code",
                "parameters": [
                    {"type": "string", "name": "room_code", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/games/{room_id}/detail": {
            "get": {
                "produces": ["application/json"],
                "tags": ["games"],
                "summary": "Game detail",
                "parameters": [
                    {"type": "string", "name": "room_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/players/{player_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["players"],
                "summary": "Gives info of a player",
                "parameters": [
                    {"type": "string", "name": "player_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["players"],
                "summary": "Updates a player's profile",
                "parameters": [
                    {"type": "string", "name": "player_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/players/{player_id}/history": {
            "get": {
                "produces": ["application/json"],
                "tags": ["players"],
                "summary": "Player game history",
                "parameters": [
                    {"type": "string", "name": "player_id", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/cards": {
            "get": {
                "produces": ["application/json"],
                "tags": ["cards"],
                "summary": "Lists playable cards",
                "parameters": [
                    {"type": "string", "name": "expansions", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/suggestions": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cards"],
                "summary": "Submits a card suggestion",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/admin/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Admin login",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/admin/cards": {
            "get": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Lists all cards (admin)",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Creates a card (admin)",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/cards/{card_id}": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Updates a card (admin)",
                "parameters": [
                    {"type": "integer", "name": "card_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Deactivates a card (admin)",
                "parameters": [
                    {"type": "integer", "name": "card_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/admin/suggestions": {
            "get": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Lists card suggestions (admin)",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/suggestions/{suggestion_id}": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Reviews a card suggestion (admin)",
                "parameters": [
                    {"type": "string", "name": "suggestion_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/admin/analytics": {
            "get": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Usage analytics (admin)",
                "responses": {"200": {"description": "OK"}}
            }
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Pineapple API",
	Description:      "Gin-Gonic server for the Pineapple party-game backend",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
