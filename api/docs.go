// Package docs holds the OpenAPI document served at /docs.
//
// Regenerate it with
//
//	swag init --parseInternal --output api
//
// after changing handler annotations.
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
            "get": {
                "description": "Entrypoint for the API, listing all endpoints",
                "tags": [
                    "General"
                ],
                "summary": "API root",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "options": {
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": [
                    "General"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        },
        "/api/admin/ai/financial-report": {
            "post": {
                "description": "Computes the district report from the stored documents and writes it as narrative",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Admin"
                ],
                "summary": "District narrative report",
                "parameters": [
                    {
                        "description": "Selection",
                        "name": "request",
                        "in": "body",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "401": {
                        "description": "Unauthorized"
                    },
                    "403": {
                        "description": "Forbidden"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            }
        },
        "/api/admin/financial-reports": {
            "get": {
                "description": "Returns the aggregated figures of all reports matching the filter, per assembly and per period",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Admin"
                ],
                "summary": "District financial report",
                "parameters": [
                    {
                        "description": "Assembly, all assemblies if not set",
                        "name": "assembly",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Month name or number",
                        "name": "month",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Year",
                        "name": "year",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Earliest submission date",
                        "name": "startDate",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Latest submission date",
                        "name": "endDate",
                        "in": "query",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "401": {
                        "description": "Unauthorized"
                    },
                    "403": {
                        "description": "Forbidden"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            }
        },
        "/api/admin/reports/detailed": {
            "get": {
                "description": "Returns one page of Sunday service reports and a summary over all reports matching the filter",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Admin"
                ],
                "summary": "Detailed Sunday service reports",
                "parameters": [
                    {
                        "description": "Assembly, all assemblies if not set",
                        "name": "assembly",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Month name or number",
                        "name": "month",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Year",
                        "name": "year",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Service type",
                        "name": "serviceType",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Page, starting at 1",
                        "name": "page",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "description": "Reports per page",
                        "name": "limit",
                        "in": "query",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "401": {
                        "description": "Unauthorized"
                    },
                    "403": {
                        "description": "Forbidden"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            }
        },
        "/api/admin/submission-status": {
            "get": {
                "description": "Returns for every assembly which document kinds were submitted for the period",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Admin"
                ],
                "summary": "Submission status",
                "parameters": [
                    {
                        "description": "Month name or number, or a full period like November-2025",
                        "name": "month",
                        "in": "query",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Year, required unless month is a full period",
                        "name": "year",
                        "in": "query",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "401": {
                        "description": "Unauthorized"
                    },
                    "403": {
                        "description": "Forbidden"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            }
        },
        "/api/ai/financial-report": {
            "post": {
                "description": "Writes the financial report of an assembly from the totals that are sent",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Narrative reports"
                ],
                "summary": "Financial narrative report",
                "parameters": [
                    {
                        "description": "Totals",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            }
        },
        "/api/ai/report": {
            "post": {
                "description": "is available, a report is built from the figures.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Narrative reports"
                ],
                "summary": "Narrative report",
                "parameters": [
                    {
                        "description": "Figures",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            }
        },
        "/api/financial-reports": {
            "get": {
                "description": "Returns the totals of all reports of one assembly",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Financial reports"
                ],
                "summary": "Assembly financial report",
                "parameters": [
                    {
                        "description": "The assembly",
                        "name": "assembly",
                        "in": "query",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Month name or number",
                        "name": "month",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Year",
                        "name": "year",
                        "in": "query",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            }
        },
        "/api/generate/financial-report": {
            "post": {
                "description": "Writes the financial report of an assembly from the totals that are sent",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Narrative reports"
                ],
                "summary": "Financial narrative report",
                "parameters": [
                    {
                        "description": "Totals",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            }
        },
        "/api/login": {
            "post": {
                "description": "Checks the credentials of an assembly. When authentication is enabled, the response contains the session token.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Authentication"
                ],
                "summary": "Log in",
                "parameters": [
                    {
                        "description": "Credentials",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "401": {
                        "description": "Unauthorized"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            }
        },
        "/api/midweek-service-reports": {
            "options": {
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": [
                    "Reports"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            },
            "post": {
                "description": "Creates the report of an assembly for a month or replaces the existing one. Records without any non-zero value are dropped, totals are computed.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Reports"
                ],
                "summary": "Submit report",
                "parameters": [
                    {
                        "description": "The report. The records differ per kind, see the models",
                        "name": "report",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Existing report replaced"
                    },
                    "201": {
                        "description": "Report created"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            },
            "get": {
                "description": "Returns the reports matching the filter, newest first",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Reports"
                ],
                "summary": "List reports",
                "parameters": [
                    {
                        "description": "Filter by assembly, 'all' for every assembly",
                        "name": "assembly",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Filter by month name or number",
                        "name": "month",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Filter by year",
                        "name": "year",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Submitted at or after this date",
                        "name": "startDate",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Submitted at or before this date",
                        "name": "endDate",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Filter by service type",
                        "name": "serviceType",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "The offset of the first report returned. Defaults to 0.",
                        "name": "offset",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "description": "Maximum number of reports to return. Defaults to 50, at most 500.",
                        "name": "limit",
                        "in": "query",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            }
        },
        "/api/midweek-service-reports/{id}": {
            "options": {
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": [
                    "Reports"
                ],
                "summary": "Allowed HTTP verbs",
                "parameters": [
                    {
                        "description": "ID formatted as string",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "404": {
                        "description": "Not Found"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            },
            "get": {
                "description": "Returns a specific report",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Reports"
                ],
                "summary": "Get report",
                "parameters": [
                    {
                        "description": "ID formatted as string",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "404": {
                        "description": "Not Found"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            },
            "delete": {
                "description": "Deletes a report",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Reports"
                ],
                "summary": "Delete report",
                "parameters": [
                    {
                        "description": "ID formatted as string",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "404": {
                        "description": "Not Found"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            }
        },
        "/api/offering-reports": {
            "options": {
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": [
                    "Reports"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            },
            "post": {
                "description": "Creates the report of an assembly for a month or replaces the existing one. Records without any non-zero value are dropped, totals are computed.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Reports"
                ],
                "summary": "Submit report",
                "parameters": [
                    {
                        "description": "The report. The records differ per kind, see the models",
                        "name": "report",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Existing report replaced"
                    },
                    "201": {
                        "description": "Report created"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            },
            "get": {
                "description": "Returns the reports matching the filter, newest first",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Reports"
                ],
                "summary": "List reports",
                "parameters": [
                    {
                        "description": "Filter by assembly, 'all' for every assembly",
                        "name": "assembly",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Filter by month name or number",
                        "name": "month",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Filter by year",
                        "name": "year",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Submitted at or after this date",
                        "name": "startDate",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Submitted at or before this date",
                        "name": "endDate",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Filter by service type",
                        "name": "serviceType",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "The offset of the first report returned. Defaults to 0.",
                        "name": "offset",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "description": "Maximum number of reports to return. Defaults to 50, at most 500.",
                        "name": "limit",
                        "in": "query",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            }
        },
        "/api/offering-reports/{id}": {
            "options": {
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": [
                    "Reports"
                ],
                "summary": "Allowed HTTP verbs",
                "parameters": [
                    {
                        "description": "ID formatted as string",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "404": {
                        "description": "Not Found"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            },
            "get": {
                "description": "Returns a specific report",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Reports"
                ],
                "summary": "Get report",
                "parameters": [
                    {
                        "description": "ID formatted as string",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "404": {
                        "description": "Not Found"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            },
            "delete": {
                "description": "Deletes a report",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Reports"
                ],
                "summary": "Delete report",
                "parameters": [
                    {
                        "description": "ID formatted as string",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "404": {
                        "description": "Not Found"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            }
        },
        "/api/special-service-reports": {
            "options": {
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": [
                    "Reports"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            },
            "post": {
                "description": "Creates the report of an assembly for a month or replaces the existing one. Records without any non-zero value are dropped, totals are computed.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Reports"
                ],
                "summary": "Submit report",
                "parameters": [
                    {
                        "description": "The report. The records differ per kind, see the models",
                        "name": "report",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Existing report replaced"
                    },
                    "201": {
                        "description": "Report created"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            },
            "get": {
                "description": "Returns the reports matching the filter, newest first",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Reports"
                ],
                "summary": "List reports",
                "parameters": [
                    {
                        "description": "Filter by assembly, 'all' for every assembly",
                        "name": "assembly",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Filter by month name or number",
                        "name": "month",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Filter by year",
                        "name": "year",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Submitted at or after this date",
                        "name": "startDate",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Submitted at or before this date",
                        "name": "endDate",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Filter by service type",
                        "name": "serviceType",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "The offset of the first report returned. Defaults to 0.",
                        "name": "offset",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "description": "Maximum number of reports to return. Defaults to 50, at most 500.",
                        "name": "limit",
                        "in": "query",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            }
        },
        "/api/special-service-reports/{id}": {
            "options": {
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": [
                    "Reports"
                ],
                "summary": "Allowed HTTP verbs",
                "parameters": [
                    {
                        "description": "ID formatted as string",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "404": {
                        "description": "Not Found"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            },
            "get": {
                "description": "Returns a specific report",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Reports"
                ],
                "summary": "Get report",
                "parameters": [
                    {
                        "description": "ID formatted as string",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "404": {
                        "description": "Not Found"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            },
            "delete": {
                "description": "Deletes a report",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Reports"
                ],
                "summary": "Delete report",
                "parameters": [
                    {
                        "description": "ID formatted as string",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "404": {
                        "description": "Not Found"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            }
        },
        "/api/submissions": {
            "options": {
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": [
                    "Reports"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            },
            "post": {
                "description": "Creates the report of an assembly for a month or replaces the existing one. Records without any non-zero value are dropped, totals are computed.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Reports"
                ],
                "summary": "Submit report",
                "parameters": [
                    {
                        "description": "The report. The records differ per kind, see the models",
                        "name": "report",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Existing report replaced"
                    },
                    "201": {
                        "description": "Report created"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            },
            "get": {
                "description": "Returns the reports matching the filter, newest first",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Reports"
                ],
                "summary": "List reports",
                "parameters": [
                    {
                        "description": "Filter by assembly, 'all' for every assembly",
                        "name": "assembly",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Filter by month name or number",
                        "name": "month",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Filter by year",
                        "name": "year",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Submitted at or after this date",
                        "name": "startDate",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Submitted at or before this date",
                        "name": "endDate",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Filter by service type",
                        "name": "serviceType",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "The offset of the first report returned. Defaults to 0.",
                        "name": "offset",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "description": "Maximum number of reports to return. Defaults to 50, at most 500.",
                        "name": "limit",
                        "in": "query",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            }
        },
        "/api/submissions/{id}": {
            "options": {
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": [
                    "Reports"
                ],
                "summary": "Allowed HTTP verbs",
                "parameters": [
                    {
                        "description": "ID formatted as string",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "404": {
                        "description": "Not Found"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            },
            "get": {
                "description": "Returns a specific report",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Reports"
                ],
                "summary": "Get report",
                "parameters": [
                    {
                        "description": "ID formatted as string",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "404": {
                        "description": "Not Found"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            },
            "delete": {
                "description": "Deletes a report",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Reports"
                ],
                "summary": "Delete report",
                "parameters": [
                    {
                        "description": "ID formatted as string",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "404": {
                        "description": "Not Found"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            }
        },
        "/api/sunday-service-reports": {
            "options": {
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": [
                    "Reports"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            },
            "post": {
                "description": "Creates the report of an assembly for a month or replaces the existing one. Records without any non-zero value are dropped, totals are computed.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Reports"
                ],
                "summary": "Submit report",
                "parameters": [
                    {
                        "description": "The report. The records differ per kind, see the models",
                        "name": "report",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Existing report replaced"
                    },
                    "201": {
                        "description": "Report created"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            },
            "get": {
                "description": "Returns the reports matching the filter, newest first",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Reports"
                ],
                "summary": "List reports",
                "parameters": [
                    {
                        "description": "Filter by assembly, 'all' for every assembly",
                        "name": "assembly",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Filter by month name or number",
                        "name": "month",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Filter by year",
                        "name": "year",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Submitted at or after this date",
                        "name": "startDate",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Submitted at or before this date",
                        "name": "endDate",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Filter by service type",
                        "name": "serviceType",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "The offset of the first report returned. Defaults to 0.",
                        "name": "offset",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "description": "Maximum number of reports to return. Defaults to 50, at most 500.",
                        "name": "limit",
                        "in": "query",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            }
        },
        "/api/sunday-service-reports/{id}": {
            "options": {
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": [
                    "Reports"
                ],
                "summary": "Allowed HTTP verbs",
                "parameters": [
                    {
                        "description": "ID formatted as string",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "404": {
                        "description": "Not Found"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            },
            "get": {
                "description": "Returns a specific report",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Reports"
                ],
                "summary": "Get report",
                "parameters": [
                    {
                        "description": "ID formatted as string",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "404": {
                        "description": "Not Found"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            },
            "delete": {
                "description": "Deletes a report",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Reports"
                ],
                "summary": "Delete report",
                "parameters": [
                    {
                        "description": "ID formatted as string",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "404": {
                        "description": "Not Found"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            }
        },
        "/api/tithe-reports": {
            "options": {
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": [
                    "Reports"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            },
            "post": {
                "description": "Creates the report of an assembly for a month or replaces the existing one. Records without any non-zero value are dropped, totals are computed.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Reports"
                ],
                "summary": "Submit report",
                "parameters": [
                    {
                        "description": "The report. The records differ per kind, see the models",
                        "name": "report",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Existing report replaced"
                    },
                    "201": {
                        "description": "Report created"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            },
            "get": {
                "description": "Returns the reports matching the filter, newest first",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Reports"
                ],
                "summary": "List reports",
                "parameters": [
                    {
                        "description": "Filter by assembly, 'all' for every assembly",
                        "name": "assembly",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Filter by month name or number",
                        "name": "month",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Filter by year",
                        "name": "year",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Submitted at or after this date",
                        "name": "startDate",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Submitted at or before this date",
                        "name": "endDate",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "Filter by service type",
                        "name": "serviceType",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "description": "The offset of the first report returned. Defaults to 0.",
                        "name": "offset",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "description": "Maximum number of reports to return. Defaults to 50, at most 500.",
                        "name": "limit",
                        "in": "query",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            }
        },
        "/api/tithe-reports/{id}": {
            "options": {
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": [
                    "Reports"
                ],
                "summary": "Allowed HTTP verbs",
                "parameters": [
                    {
                        "description": "ID formatted as string",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "404": {
                        "description": "Not Found"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            },
            "get": {
                "description": "Returns a specific report",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Reports"
                ],
                "summary": "Get report",
                "parameters": [
                    {
                        "description": "ID formatted as string",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "404": {
                        "description": "Not Found"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            },
            "delete": {
                "description": "Deletes a report",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Reports"
                ],
                "summary": "Delete report",
                "parameters": [
                    {
                        "description": "ID formatted as string",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "404": {
                        "description": "Not Found"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            }
        },
        "/healthz": {
            "options": {
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": [
                    "General"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            },
            "get": {
                "description": "Returns the application health and, if not healthy, an error",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "General"
                ],
                "summary": "Get health",
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            }
        },
        "/version": {
            "get": {
                "description": "Returns the software version of the API",
                "tags": [
                    "General"
                ],
                "summary": "API version",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "options": {
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "tags": [
                    "General"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "",
	Host:             "",
	BasePath:         "",
	Schemes:          []string{},
	Title:            "",
	Description:      "",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
