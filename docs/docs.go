// Package docs регистрирует swagger-документ консоли для /swagger/*.
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
        "/console": {
            "get": {
                "produces": ["application/json"],
                "tags": ["console"],
                "summary": "Состояние консоли",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.ConsoleViewResponse"}}
                }
            }
        },
        "/session/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Вход администратора",
                "parameters": [
                    {"description": "Email и пароль", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.ConsoleViewResponse"}},
                    "400": {"description": "Не заполнены поля", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "401": {"description": "Error: unauthorized", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/session/logout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Выход администратора",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.ConsoleViewResponse"}}
                }
            }
        },
        "/form": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["form"],
                "summary": "Изменение полей формы товара",
                "parameters": [
                    {"description": "Поля формы", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.UpdateFormRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.ConsoleViewResponse"}},
                    "401": {"description": "Authorized users only", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/form/edit/{id}": {
            "post": {
                "produces": ["application/json"],
                "tags": ["form"],
                "summary": "Редактирование товара",
                "parameters": [
                    {"type": "integer", "description": "ID товара", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.ConsoleViewResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/form/cancel": {
            "post": {
                "produces": ["application/json"],
                "tags": ["form"],
                "summary": "Отмена редактирования",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.ConsoleViewResponse"}}
                }
            }
        },
        "/form/submit": {
            "post": {
                "produces": ["application/json"],
                "tags": ["form"],
                "summary": "Отправка формы",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.ConsoleViewResponse"}},
                    "400": {"description": "Price must be a positive integer", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "409": {"description": "Запрос уже выполняется", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "502": {"description": "Data transmission error", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/products/{id}": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Удаление товара",
                "parameters": [
                    {"type": "integer", "description": "ID товара", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.ConsoleViewResponse"}},
                    "502": {"description": "Failed to delete: no access or server error", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/media/images": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["media"],
                "summary": "Загрузка изображения товара",
                "parameters": [
                    {"type": "file", "description": "Изображение (JPEG, PNG, WebP, GIF, до 15 МБ)", "name": "image", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.ConsoleViewResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "415": {"description": "Unsupported Media Type", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "http.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "message": {"type": "string"},
                "fields": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "http.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string", "maxLength": 254},
                "password": {"type": "string", "maxLength": 128}
            }
        },
        "http.UpdateFormRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "maxLength": 255},
                "price": {"type": "string", "maxLength": 19},
                "description": {"type": "string", "maxLength": 2000},
                "image_url": {"type": "string", "maxLength": 2048}
            }
        },
        "http.PreviewResponse": {
            "type": "object",
            "properties": {
                "url": {"type": "string"},
                "placeholder": {"type": "boolean"}
            }
        },
        "http.FormResponse": {
            "type": "object",
            "properties": {
                "mode": {"type": "string", "enum": ["create", "edit"]},
                "title": {"type": "string"},
                "editing_id": {"type": "integer"},
                "name": {"type": "string"},
                "price": {"type": "string"},
                "description": {"type": "string"},
                "image_url": {"type": "string"},
                "preview": {"$ref": "#/definitions/http.PreviewResponse"}
            }
        },
        "http.ProductResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "price": {"type": "string"},
                "price_label": {"type": "string"},
                "description": {"type": "string"},
                "display_description": {"type": "string"},
                "image_url": {"type": "string"},
                "image_fallback": {"type": "string"},
                "image_alt_text": {"type": "string"},
                "stock_quantity": {"type": "integer"}
            }
        },
        "http.ConsoleViewResponse": {
            "type": "object",
            "properties": {
                "logged_in": {"type": "boolean"},
                "login_email": {"type": "string"},
                "form": {"$ref": "#/definitions/http.FormResponse"},
                "products": {"type": "array", "items": {"$ref": "#/definitions/http.ProductResponse"}},
                "rejected": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        }
    }
}`

// SwaggerInfo содержит экспортируемую swagger-информацию.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Shop Console API",
	Description:      "Консоль администратора магазина поверх удалённого REST API товаров.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
