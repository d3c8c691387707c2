package constants

import "fmt"

// Roles del personal
const (
	RoleDireccion      = "direccion"
	RoleAdministracion = "administracion"
	RoleDocente        = "docente"
)

// Plantillas de error por rol
const (
	ErrSoloDireccion = "Solo dirección puede acceder a %s."
	ErrSoloPersonal  = "Solo personal administrativo puede acceder a %s."
)

func RoleErrorDireccion(feature string) string {
	return fmt.Sprintf(ErrSoloDireccion, feature)
}

func RoleErrorPersonal(feature string) string {
	return fmt.Sprintf(ErrSoloPersonal, feature)
}

// ==========================
// Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleDireccion,
		RoleAdministracion,
		RoleDocente,
	}

	// Gestión de admisiones: dirección + administración
	AdmisionStaff = []string{
		RoleDireccion,
		RoleAdministracion,
	}

	DireccionOnly = []string{
		RoleDireccion,
	}
)
