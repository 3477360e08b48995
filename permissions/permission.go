package permissions

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"garagebook/shared/constant"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

var knownRoles = []string{constant.RoleCustomer, constant.RoleGarage, constant.RoleAdmin}

// Permission lists the roles allowed on one route. An empty list admits any signed-in user;
// Skip makes the route public.
type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`

	byRoute map[string]Permission
}

func routeKey(method, path string) string {
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	return strings.ToUpper(method) + " " + path
}

// Load decodes a permission table and rejects roles the garage does not have, so a typo
// cannot silently lock everyone out of a route.
func Load(data []byte) (*PermissionData, error) {
	var permissions PermissionData
	if err := json.Unmarshal(data, &permissions); err != nil {
		return nil, fmt.Errorf("decode permissions: %w", err)
	}

	permissions.byRoute = make(map[string]Permission, len(permissions.Endpoints))

	for _, endpoint := range permissions.Endpoints {
		for _, role := range endpoint.Permissions {
			if !slices.Contains(knownRoles, role) {
				return nil, fmt.Errorf("%s %s: unknown role %q", endpoint.Method, endpoint.Path, role)
			}
		}

		key := routeKey(endpoint.Method, endpoint.Path)
		if _, dup := permissions.byRoute[key]; dup {
			return nil, fmt.Errorf("%s: listed twice", key)
		}

		permissions.byRoute[key] = endpoint
	}

	return &permissions, nil
}

// FindPermissions matches the chi route pattern, ignoring a trailing slash. Unlisted routes
// return the zero Permission.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	return r.byRoute[routeKey(method, path)]
}

func Get() *PermissionData {
	permissions, err := Load(permissionsData)
	if err != nil {
		log.Err(err).Msg("Failed to load embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("Loaded embedded permissions")

	return permissions
}
