// file: internals/features/admissions/solicitudes/service/portal.go
//
// Portal de familias: acceso sin login, autorizado únicamente por el
// token opaco de la solicitud más un chequeo liviano de email. El portal
// nunca muta estado por su cuenta: solo autoriza y reenvía eventos a la
// máquina, que los re-valida completos.
package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	aspiranteModel "github.com/santymrk2/school-system-sub001/internals/features/admissions/aspirantes/model"
	"github.com/santymrk2/school-system-sub001/internals/features/admissions/solicitudes/model"
)

// ErrAccesoDenegado cubre todas las causas de rechazo del portal con un
// único mensaje genérico: no se revela si el token existe.
var ErrAccesoDenegado = errors.New("acceso denegado")

// =======================
// Vista
// =======================

type TurnoVista struct {
	Indice       int    `json:"indice"`
	Fecha        string `json:"fecha"` // YYYY-MM-DD
	HoraDesde    string `json:"hora_desde"`
	HoraHasta    string `json:"hora_hasta"`
	Aclaraciones string `json:"aclaraciones,omitempty"`
}

type VistaPortal struct {
	Aspirante            string       `json:"aspirante"`
	Estado               string       `json:"estado"`
	Disponibilidad       string       `json:"disponibilidad"`
	Turnos               []TurnoVista `json:"turnos"`
	FechaLimite          *string      `json:"fecha_limite,omitempty"`
	FechaConfirmada      *string      `json:"fecha_confirmada,omitempty"`
	YaRespondida         bool         `json:"ya_respondida"`
	ReprogramacionPedida bool         `json:"reprogramacion_pedida"`
}

// autorizarEmail: chequeo secundario del portal. Sin email provisto pasa;
// con email, tiene que coincidir (case-insensitive) con el contacto.
func autorizarEmail(contacto, provisto string) bool {
	provisto = strings.TrimSpace(provisto)
	if provisto == "" {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(contacto), provisto)
}

// armarVista construye la vista de la familia a partir de la ficha.
func armarVista(f Ficha, aspirante string, disponibilidad *string, cupo *bool) VistaPortal {
	v := VistaPortal{
		Aspirante:            aspirante,
		Estado:               string(f.Estado),
		Disponibilidad:       DescribirDisponibilidad(disponibilidad, cupo),
		Turnos:               []TurnoVista{},
		YaRespondida:         f.Estado != EstadoPropuestaEnviada || f.ReprogramacionPedida,
		ReprogramacionPedida: f.ReprogramacionPedida,
	}
	for i, t := range f.Turnos {
		v.Turnos = append(v.Turnos, TurnoVista{
			Indice:       i,
			Fecha:        t.Fecha.Format("2006-01-02"),
			HoraDesde:    t.HoraDesde,
			HoraHasta:    t.HoraHasta,
			Aclaraciones: t.Aclaraciones,
		})
	}
	if f.FechaLimite != nil {
		s := f.FechaLimite.Format("2006-01-02")
		v.FechaLimite = &s
	}
	if f.FechaConfirmada != nil {
		s := f.FechaConfirmada.Format("2006-01-02")
		v.FechaConfirmada = &s
	}
	return v
}

// =======================
// Resolución
// =======================

// resolver mapea token (+email opcional) a exactamente una solicitud.
// Toda denegación devuelve ErrAccesoDenegado, sin distinguir causa.
func (s *SolicitudService) resolver(ctx context.Context, token, email string) (*model.SolicitudAdmisionModel, *aspiranteModel.AspiranteModel, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, nil, ErrAccesoDenegado
	}

	var ent model.SolicitudAdmisionModel
	if err := s.DB.WithContext(ctx).
		Where("solicitud_token_portal = ? AND solicitud_deleted_at IS NULL", token).
		First(&ent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrAccesoDenegado
		}
		return nil, nil, err
	}

	var asp aspiranteModel.AspiranteModel
	if err := s.DB.WithContext(ctx).
		Where("aspirante_id = ? AND aspirante_deleted_at IS NULL", ent.SolicitudAspiranteID).
		First(&asp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrAccesoDenegado
		}
		return nil, nil, err
	}

	// Sin contacto familiar cargado no hay portal.
	if asp.AspiranteEmailFamilia == nil || strings.TrimSpace(*asp.AspiranteEmailFamilia) == "" {
		return nil, nil, ErrAccesoDenegado
	}
	if !autorizarEmail(*asp.AspiranteEmailFamilia, email) {
		return nil, nil, ErrAccesoDenegado
	}

	return &ent, &asp, nil
}

// VistaPortal resuelve el token y arma la vista de solo lectura.
func (s *SolicitudService) VistaPortal(ctx context.Context, token, email string) (VistaPortal, error) {
	ent, asp, err := s.resolver(ctx, token, email)
	if err != nil {
		return VistaPortal{}, err
	}
	ficha, err := fichaDe(ent)
	if err != nil {
		return VistaPortal{}, err
	}
	nombre := asp.AspiranteNombre + " " + asp.AspiranteApellido
	return armarVista(ficha, nombre, ent.SolicitudDisponibilidad, ent.SolicitudCupoDisponible), nil
}

// =======================
// Selección
// =======================

type SeleccionPortal struct {
	Indice     *int // nil cuando Ninguna
	Ninguna    bool
	Comentario string
}

// EnviarSeleccion procesa la respuesta de la familia. Si la solicitud ya
// no está esperando respuesta, devuelve la vista con ya_respondida=true
// y no muta nada (un token viejo no es un error).
func (s *SolicitudService) EnviarSeleccion(ctx context.Context, token, email string, sel SeleccionPortal) (VistaPortal, error) {
	ent, asp, err := s.resolver(ctx, token, email)
	if err != nil {
		return VistaPortal{}, err
	}
	nombre := asp.AspiranteNombre + " " + asp.AspiranteApellido

	ficha, err := fichaDe(ent)
	if err != nil {
		return VistaPortal{}, err
	}
	if ficha.Estado != EstadoPropuestaEnviada || ficha.ReprogramacionPedida {
		return armarVista(ficha, nombre, ent.SolicitudDisponibilidad, ent.SolicitudCupoDisponible), nil
	}

	var actualizado *model.SolicitudAdmisionModel
	if sel.Ninguna {
		actualizado, err = s.PedirReprogramacion(ctx, ent.SolicitudID, sel.Comentario)
	} else {
		if sel.Indice == nil {
			return VistaPortal{}, &SeleccionInvalidaError{Indice: -1, Cantidad: len(ficha.Turnos)}
		}
		actualizado, err = s.ConfirmarPorIndice(ctx, ent.SolicitudID, *sel.Indice)
	}
	if err != nil {
		// Perdió una carrera contra otra transición: para la familia es
		// lo mismo que llegar tarde, se devuelve la vista actual.
		var tiErr *TransicionInvalidaError
		if errors.As(err, &tiErr) {
			return s.VistaPortal(ctx, token, email)
		}
		return VistaPortal{}, err
	}

	fichaNueva, err := fichaDe(actualizado)
	if err != nil {
		return VistaPortal{}, err
	}
	return armarVista(fichaNueva, nombre, actualizado.SolicitudDisponibilidad, actualizado.SolicitudCupoDisponible), nil
}
