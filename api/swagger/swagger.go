package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "EduLite School API",
        "description": "Role-based school management backend",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Sign-in and account management"},
        {"name": "Admin", "description": "Academic years, classes, students, enrollments, staff"},
        {"name": "Teacher", "description": "Attendance, marks, class rosters"},
        {"name": "Student", "description": "Profile, marks, attendance, fees"},
        {"name": "Accountant", "description": "Fee collection and reporting"},
        {"name": "Principal", "description": "School-wide statistics"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/auth/signin": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate a user and issue a JWT",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SignInRequest"}}
                ],
                "responses": {
                    "200": {"description": "Token issued", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/registration": {
            "post": {
                "tags": ["Auth"],
                "summary": "Register a staff account (admin only)",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Username taken", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/change-password": {
            "put": {
                "tags": ["Auth"],
                "summary": "Change the caller's password",
                "responses": {
                    "200": {"description": "Changed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Old password mismatch", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/students": {
            "post": {
                "tags": ["Admin"],
                "summary": "Register a student with an initial enrollment",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Registration number taken", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/enrollments/promote": {
            "post": {
                "tags": ["Admin"],
                "summary": "Promote or graduate an entire class cohort",
                "responses": {
                    "200": {"description": "Promotion result", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Cohort already promoted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "412": {"description": "No next year or target class", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/accountant/fees/payments": {
            "post": {
                "tags": ["Accountant"],
                "summary": "Record a fee payment and issue a receipt",
                "responses": {
                    "201": {"description": "Payment recorded", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Overpayment rejected", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/accountant/fees/receipts/{receiptNo}": {
            "get": {
                "tags": ["Accountant"],
                "summary": "Download a payment receipt as PDF",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "receiptNo", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "PDF receipt"},
                    "404": {"description": "Unknown receipt", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "SignInRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
