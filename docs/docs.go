// Package docs holds the OpenAPI description served under /swagger/.
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
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/health": {
            "get": {"tags": ["health"], "summary": "Liveness check", "responses": {"200": {"description": "OK"}}}
        },
        "/events": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["events"],
                "summary": "List events",
                "parameters": [
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "page_size", "in": "query"},
                    {"type": "string", "name": "from", "in": "query"},
                    {"type": "string", "name": "to", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.ListEventsSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["events"],
                "summary": "Create an event",
                "parameters": [{"name": "event", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.EventRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/controllers.EventSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/events/{eventID}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["events"],
                "summary": "Get an event by ID",
                "parameters": [{"type": "string", "name": "eventID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.EventSuccessResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["events"],
                "summary": "Replace an event's editable fields",
                "parameters": [
                    {"type": "string", "name": "eventID", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.UpdateEventRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.EventSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["events"],
                "summary": "Delete an event",
                "parameters": [{"type": "string", "name": "eventID", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No content"},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/events/{eventID}/ics": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["text/calendar"],
                "tags": ["events"],
                "summary": "Download an event as iCalendar",
                "parameters": [{"type": "string", "name": "eventID", "in": "path", "required": true}],
                "responses": {"200": {"description": "iCalendar document", "schema": {"type": "string"}}}
            }
        },
        "/events/{eventID}/share": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["events"],
                "summary": "Email an event to its linked contact",
                "parameters": [{"type": "string", "name": "eventID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "data contains event_id and sent_to", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/contacts": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["contacts"],
                "summary": "List contacts",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.ListContactsSuccessResponse"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["contacts"],
                "summary": "Create a contact",
                "parameters": [{"name": "contact", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.CreateContactRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/controllers.ContactSuccessResponse"}}}
            }
        },
        "/contacts/{contactID}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["contacts"],
                "summary": "Get a contact by ID",
                "parameters": [{"type": "string", "name": "contactID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.ContactSuccessResponse"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["contacts"],
                "summary": "Delete a contact",
                "parameters": [{"type": "string", "name": "contactID", "in": "path", "required": true}],
                "responses": {"204": {"description": "No content"}}
            }
        }
    },
    "definitions": {
        "helpers.APIError": {
            "type": "object",
            "properties": {"code": {"type": "string"}, "message": {"type": "string"}}
        },
        "helpers.APIResponse": {
            "type": "object",
            "properties": {"data": {}, "error": {"$ref": "#/definitions/helpers.APIError"}}
        },
        "helpers.PaginationMeta": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"}, "page_size": {"type": "integer"},
                "total": {"type": "integer"}, "total_pages": {"type": "integer"}
            }
        },
        "domain.CalendarEvent": {
            "type": "object",
            "properties": {
                "id": {"type": "string"}, "title": {"type": "string"},
                "location": {"type": "string"}, "notes": {"type": "string"},
                "start_date": {"type": "string"}, "end_date": {"type": "string"},
                "contact_id": {"type": "string"},
                "created_at": {"type": "string"}, "updated_at": {"type": "string"}
            }
        },
        "domain.Contact": {
            "type": "object",
            "properties": {
                "id": {"type": "string"}, "name": {"type": "string"},
                "email": {"type": "string"}, "phone": {"type": "string"},
                "created_at": {"type": "string"}, "updated_at": {"type": "string"}
            }
        },
        "controllers.EventRequest": {
            "type": "object",
            "required": ["title", "start_date", "end_date"],
            "properties": {
                "title": {"type": "string"}, "location": {"type": "string"}, "notes": {"type": "string"},
                "start_date": {"type": "string"}, "end_date": {"type": "string"}, "contact_id": {"type": "string"}
            }
        },
        "controllers.UpdateEventRequest": {
            "type": "object",
            "required": ["title", "start_date", "end_date"],
            "properties": {
                "id": {"type": "string"}, "title": {"type": "string"}, "location": {"type": "string"},
                "notes": {"type": "string"}, "start_date": {"type": "string"}, "end_date": {"type": "string"},
                "contact_id": {"type": "string"}, "organizer": {"type": "string"},
                "attendees": {"type": "array", "items": {"type": "string"}}
            }
        },
        "controllers.CreateContactRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {"name": {"type": "string"}, "email": {"type": "string"}, "phone": {"type": "string"}}
        },
        "controllers.EventSuccessResponse": {
            "type": "object",
            "properties": {"data": {"$ref": "#/definitions/domain.CalendarEvent"}, "error": {"$ref": "#/definitions/helpers.APIError"}}
        },
        "controllers.ListEventsResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/domain.CalendarEvent"}},
                "pagination": {"$ref": "#/definitions/helpers.PaginationMeta"}
            }
        },
        "controllers.ListEventsSuccessResponse": {
            "type": "object",
            "properties": {"data": {"$ref": "#/definitions/controllers.ListEventsResponse"}, "error": {"$ref": "#/definitions/helpers.APIError"}}
        },
        "controllers.ContactSuccessResponse": {
            "type": "object",
            "properties": {"data": {"$ref": "#/definitions/domain.Contact"}, "error": {"$ref": "#/definitions/helpers.APIError"}}
        },
        "controllers.ListContactsSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/domain.Contact"}},
                "error": {"$ref": "#/definitions/helpers.APIError"}
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
	Title:            "Agenda API",
	Description:      "Calendar events and contacts backing the agenda client.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
