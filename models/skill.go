package models

import "strings"

// Skills is the catalog of skill tags a project can require.
var Skills = []string{
	"React",
	"Node.js",
	"UI/UX Design",
	"Project Management",
	"Databases",
	"DevOps",
	"Frontend",
	"Backend",
}

// CanonicalSkill returns the catalog spelling of name, matching case-insensitively.
func CanonicalSkill(name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, s := range Skills {
		if strings.EqualFold(s, name) {
			return s, true
		}
	}
	return "", false
}
