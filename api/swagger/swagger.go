package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Gradefolio API",
        "description": "Grade tracking, GPA/CGPA analytics and target planning",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Registration and token issuance"},
        {"name": "Conversion", "description": "Scale conversion and grading templates"},
        {"name": "Calculator", "description": "Stateless GPA/CGPA engine"},
        {"name": "Charts", "description": "Chart-ready projections"},
        {"name": "Export", "description": "Transcript export and import"},
        {"name": "Session", "description": "Per-user stored session"},
        {"name": "Peers", "description": "Peer CGPA comparison"}
    ],
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["Auth"],
                "summary": "Register a new account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate and issue tokens",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Auth"],
                "summary": "Exchange a refresh token for a new token pair",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/convert-scale": {
            "post": {
                "tags": ["Conversion"],
                "summary": "Convert a GPA value between the 4-point and 10-point scales",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ConversionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/templates": {
            "get": {
                "tags": ["Conversion"],
                "summary": "List built-in grading templates",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/calculator/summary": {
            "post": {
                "tags": ["Calculator"],
                "summary": "Per-semester GPAs and CGPA for a posted session",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/calculator/statistics": {
            "post": {
                "tags": ["Calculator"],
                "summary": "Session statistics and trend direction",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/calculator/target": {
            "post": {
                "tags": ["Calculator"],
                "summary": "GPA required over remaining credits for a target CGPA",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/calculator/semester-target": {
            "post": {
                "tags": ["Calculator"],
                "summary": "Per-course requirements inside one semester",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/calculator/charts/timeline": {
            "post": {
                "tags": ["Charts"],
                "summary": "Running CGPA timeline",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/calculator/charts/distribution": {
            "post": {
                "tags": ["Charts"],
                "summary": "Letter grade distribution",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/calculator/charts/credits": {
            "post": {
                "tags": ["Charts"],
                "summary": "Completed versus remaining credits",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/calculator/charts/comparison": {
            "post": {
                "tags": ["Charts"],
                "summary": "Per-semester GPA comparison",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/calculator/charts/top-courses": {
            "post": {
                "tags": ["Charts"],
                "summary": "Best scoring courses",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/calculator/charts/progress": {
            "post": {
                "tags": ["Charts"],
                "summary": "Degree completion metrics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/export/pdf": {
            "post": {
                "tags": ["Export"],
                "summary": "Render the posted session as a PDF transcript",
                "produces": ["application/pdf"],
                "responses": {
                    "200": {"description": "PDF document"}
                }
            }
        },
        "/export/csv": {
            "post": {
                "tags": ["Export"],
                "summary": "Render the posted session as CSV",
                "produces": ["text/csv"],
                "responses": {
                    "200": {"description": "CSV document"}
                }
            }
        },
        "/export/xlsx": {
            "post": {
                "tags": ["Export"],
                "summary": "Render the posted session as an XLSX workbook",
                "responses": {
                    "200": {"description": "XLSX workbook"}
                }
            }
        },
        "/import/xlsx": {
            "post": {
                "tags": ["Export"],
                "summary": "Parse an uploaded XLSX workbook into a session",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "file", "in": "formData", "required": true, "type": "file"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/import/csv": {
            "post": {
                "tags": ["Export"],
                "summary": "Parse an uploaded CSV file into a session",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "file", "in": "formData", "required": true, "type": "file"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/session": {
            "get": {
                "tags": ["Session"],
                "summary": "Load the stored session",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Session"],
                "summary": "Store the posted session",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Session"],
                "summary": "Delete the stored session",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/peers": {
            "get": {
                "tags": ["Peers"],
                "summary": "List comparison peers",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Peers"],
                "summary": "Add a comparison peer",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/peers/{id}": {
            "delete": {
                "tags": ["Peers"],
                "summary": "Remove a comparison peer",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/peers/comparison": {
            "get": {
                "tags": ["Peers"],
                "summary": "CGPA comparison series including the current user",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "definitions": {
        "RegisterRequest": {
            "type": "object",
            "required": ["email", "password", "full_name"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "full_name": {"type": "string"}
            }
        },
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "ConversionRequest": {
            "type": "object",
            "required": ["from_scale", "to_scale"],
            "properties": {
                "value": {"type": "number"},
                "from_scale": {"type": "integer", "enum": [4, 10]},
                "to_scale": {"type": "integer", "enum": [4, 10]},
                "method": {"type": "string", "enum": ["linear", "official"]}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
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
