package httpapi

import (
	"net/http"

	"github.com/Guilhem-Bonnet/AniSwipe/internal/httpjson"
)

// handleOpenAPI renvoie une spec OpenAPI minimale pour cadrer l'API.
func (s *Server) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	jsonOK := func(schemaRef string) map[string]any {
		return map[string]any{
			"description": "OK",
			"content": map[string]any{
				"application/json": map[string]any{
					"schema": map[string]any{"$ref": schemaRef},
				},
			},
		}
	}

	jsonErr := map[string]any{
		"description": "Error",
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/Error"},
			},
		},
	}

	spec := map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":   "AniSwipe API",
			"version": "v1",
		},
		"components": map[string]any{
			"schemas": map[string]any{
				"Error": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"error": map[string]any{"type": "string"},
					},
					"required": []any{"error"},
				},
				"Decision": map[string]any{
					"type": "string",
					"enum": []any{"liked", "disliked"},
				},
				"ListEntry": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":     map[string]any{"type": "string"},
						"title":  map[string]any{"type": "string"},
						"status": map[string]any{"type": "string"},
					},
				},
				"AnimeMetadata": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"malId":         map[string]any{"type": "integer"},
						"title":         map[string]any{"type": "string"},
						"titleEnglish":  map[string]any{"type": "string"},
						"imageUrl":      map[string]any{"type": "string"},
						"largeImageUrl": map[string]any{"type": "string"},
						"episodes":      map[string]any{"type": "integer"},
						"type":          map[string]any{"type": "string"},
						"score":         map[string]any{"type": "number", "format": "double"},
					},
				},
				"SessionView": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"sessionId": map[string]any{"type": "string"},
						"listId":    map[string]any{"type": "string"},
						"listName":  map[string]any{"type": "string"},
						"cursor":    map[string]any{"type": "integer"},
						"total":     map[string]any{"type": "integer"},
						"exhausted": map[string]any{"type": "boolean"},
						"entry":     map[string]any{"$ref": "#/components/schemas/ListEntry"},
						"metadata":  map[string]any{"$ref": "#/components/schemas/AnimeMetadata"},
						"loading":   map[string]any{"type": "boolean"},
						"cooldown":  map[string]any{"type": "boolean"},
						"liked": map[string]any{
							"type":  "array",
							"items": map[string]any{"$ref": "#/components/schemas/AnimeMetadata"},
						},
					},
				},
				"Settings": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"statusFilter":          map[string]any{"type": "string"},
						"prefetchWindow":        map[string]any{"type": "integer", "minimum": 1},
						"maxConcurrentPrefetch": map[string]any{"type": "integer", "minimum": 1},
						"minFetchIntervalMs":    map[string]any{"type": "integer", "minimum": 1},
						"decisionCooldownMs":    map[string]any{"type": "integer", "minimum": 1},
					},
					"additionalProperties": false,
				},
			},
		},
		"paths": map[string]any{
			"/api/v1/health":  map[string]any{"get": map[string]any{"responses": map[string]any{"200": jsonOK("#/components/schemas/Error")}}},
			"/api/v1/version": map[string]any{"get": map[string]any{"responses": map[string]any{"200": jsonOK("#/components/schemas/Error")}}},
			"/api/v1/session": map[string]any{
				"get": map[string]any{
					"responses": map[string]any{"200": jsonOK("#/components/schemas/SessionView"), "404": jsonErr},
				},
			},
			"/api/v1/session/decision": map[string]any{
				"post": map[string]any{
					"responses": map[string]any{"200": jsonOK("#/components/schemas/SessionView"), "409": jsonErr},
				},
			},
			"/api/v1/lists": map[string]any{
				"post": map[string]any{
					"responses": map[string]any{"201": jsonOK("#/components/schemas/SessionView"), "400": jsonErr},
				},
			},
			"/api/v1/settings": map[string]any{
				"get": map[string]any{"responses": map[string]any{"200": jsonOK("#/components/schemas/Settings")}},
				"put": map[string]any{"responses": map[string]any{"200": jsonOK("#/components/schemas/Settings"), "400": jsonErr}},
			},
		},
	}

	httpjson.Write(w, http.StatusOK, spec)
}
