package constants

import "fmt"

// RoleAdmin: satu-satunya role yang boleh menulis (update progress, catalog, trigger job).
const RoleAdmin = "admin"

const ErrOnlyAdminsCanAccess = "❌ Hanya admin yang boleh mengakses fitur %s."

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

var AdminOnly = []string{RoleAdmin}
