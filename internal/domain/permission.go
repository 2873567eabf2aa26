package domain

import (
	"fmt"
	"strings"
)

// Permission represents a repository permission level
type Permission string

const (
	PermissionPull     Permission = "pull"
	PermissionTriage   Permission = "triage"
	PermissionPush     Permission = "push"
	PermissionMaintain Permission = "maintain"
	PermissionAdmin    Permission = "admin"
)

// Permissions lists the valid permission levels in increasing privilege order
func Permissions() []Permission {
	return []Permission{
		PermissionPull,
		PermissionTriage,
		PermissionPush,
		PermissionMaintain,
		PermissionAdmin,
	}
}

// ParsePermission validates a permission level, case-insensitively
func ParsePermission(s string) (Permission, error) {
	p := Permission(strings.ToLower(s))
	for _, valid := range Permissions() {
		if p == valid {
			return p, nil
		}
	}
	return "", fmt.Errorf("invalid permission %q: must be one of pull, triage, push, maintain, admin", s)
}
