// Package docs is generated by swaggo/swag from the handler annotations.
// Regenerate with: swag init -g cmd/server/main.go
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
        "/": {
            "get": {"produces": ["text/html"], "tags": ["store"], "summary": "Landing page", "responses": {"200": {"description": "OK"}}}
        },
        "/products": {
            "get": {"produces": ["text/html"], "tags": ["store"], "summary": "List the product catalog", "responses": {"200": {"description": "OK"}, "500": {"description": "Internal Server Error"}}}
        },
        "/contact": {
            "get": {"produces": ["text/html"], "tags": ["store"], "summary": "Contact page", "responses": {"200": {"description": "OK"}}}
        },
        "/about": {
            "get": {"produces": ["text/html"], "tags": ["store"], "summary": "About page", "responses": {"200": {"description": "OK"}}}
        },
        "/post": {
            "get": {"produces": ["text/html"], "tags": ["store"], "summary": "Blog post page", "responses": {"200": {"description": "OK"}}}
        },
        "/cart": {
            "get": {"produces": ["text/html"], "tags": ["cart"], "summary": "Show the session cart", "responses": {"200": {"description": "OK"}}}
        },
        "/add-to-cart/{id}": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "tags": ["cart"],
                "summary": "Add a product to the cart",
                "parameters": [
                    {"type": "integer", "description": "Product id", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "description": "Units to add (default 1)", "name": "quantity", "in": "formData"}
                ],
                "responses": {"303": {"description": "See Other"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            }
        },
        "/remove-from-cart/{id}": {
            "post": {
                "tags": ["cart"],
                "summary": "Remove a product from the cart",
                "parameters": [
                    {"type": "integer", "description": "Product id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {"303": {"description": "See Other"}}
            }
        },
        "/update-cart/{id}": {
            "post": {
                "description": "A quantity of 0 removes the line. Negative quantities are rejected.",
                "consumes": ["application/x-www-form-urlencoded"],
                "tags": ["cart"],
                "summary": "Change the quantity of a cart line",
                "parameters": [
                    {"type": "integer", "description": "Product id", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "description": "New quantity", "name": "quantity", "in": "formData", "required": true}
                ],
                "responses": {"303": {"description": "See Other"}, "400": {"description": "Bad Request"}}
            }
        },
        "/checkout": {
            "post": {
                "description": "Requires a logged-in session; otherwise the cart is shown with an error message.",
                "produces": ["text/html"],
                "tags": ["cart"],
                "summary": "Simulate payment for the cart",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/register": {
            "get": {"produces": ["text/html"], "tags": ["auth"], "summary": "Registration form", "responses": {"200": {"description": "OK"}}},
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["text/html"],
                "tags": ["auth"],
                "summary": "Register a new user",
                "parameters": [
                    {"type": "string", "description": "Display name", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "description": "Email address", "name": "email", "in": "formData", "required": true},
                    {"type": "string", "description": "Password", "name": "password", "in": "formData", "required": true}
                ],
                "responses": {"303": {"description": "See Other"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}
            }
        },
        "/login": {
            "get": {"produces": ["text/html"], "tags": ["auth"], "summary": "Login form", "responses": {"200": {"description": "OK"}}},
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["text/html"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [
                    {"type": "string", "description": "Email address", "name": "email", "in": "formData", "required": true},
                    {"type": "string", "description": "Password", "name": "password", "in": "formData", "required": true}
                ],
                "responses": {"303": {"description": "See Other"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/logout": {
            "get": {"tags": ["auth"], "summary": "Logout", "responses": {"303": {"description": "See Other"}}},
            "post": {"tags": ["auth"], "summary": "Logout", "responses": {"303": {"description": "See Other"}}}
        },
        "/health": {
            "get": {"produces": ["application/json"], "tags": ["health"], "summary": "Liveness probe", "responses": {"200": {"description": "OK"}}}
        },
        "/health/ready": {
            "get": {"produces": ["application/json"], "tags": ["health"], "summary": "Readiness probe", "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "EcoAgua Storefront",
	Description:      "Server-rendered storefront for water-saving products: catalog, session cart, accounts and a simulated checkout.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
