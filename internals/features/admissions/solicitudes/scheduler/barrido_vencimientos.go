// file: internals/features/admissions/solicitudes/scheduler/barrido_vencimientos.go
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/santymrk2/school-system-sub001/internals/configs"
	"github.com/santymrk2/school-system-sub001/internals/features/admissions/solicitudes/service"
)

// Interfaces chicas para poder testear el barrido sin base.
type FuenteVencidas interface {
	BuscarVencidas(ctx context.Context, hoy time.Time) ([]uuid.UUID, error)
}

type Rechazador interface {
	RechazarPorVencimiento(ctx context.Context, id uuid.UUID) error
}

// Barredor recorre las propuestas vencidas y las rechaza una por una a
// través del mismo service que usan las vías interactivas. Es idempotente:
// una solicitud que ya salió de propuesta_enviada deja de ser elegible.
type Barredor struct {
	Fuente  FuenteVencidas
	Rechazo Rechazador
	Ahora   func() time.Time
}

// Barrer ejecuta una pasada. El error de una solicitud se loguea y no
// corta el resto del barrido; devuelve cuántas se rechazaron.
func (b *Barredor) Barrer(ctx context.Context) (int, error) {
	ids, err := b.Fuente.BuscarVencidas(ctx, b.Ahora())
	if err != nil {
		return 0, err
	}

	rechazadas := 0
	for _, id := range ids {
		if err := b.Rechazo.RechazarPorVencimiento(ctx, id); err != nil {
			log.Printf("[BARRIDO] error en solicitud %s: %v", id, err)
			continue
		}
		rechazadas++
	}
	return rechazadas, nil
}

// StartBarridoVencimientos lanza el barrido periódico (default: cada 24h,
// configurable con BARRIDO_HORAS).
func StartBarridoVencimientos(svc *service.SolicitudService) {
	go func() {
		b := &Barredor{Fuente: svc, Rechazo: svc, Ahora: svc.Ahora}
		intervalo := time.Duration(configs.BarridoHoras) * time.Hour

		for {
			log.Println("[BARRIDO] Revisando propuestas vencidas...")
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			n, err := b.Barrer(ctx)
			cancel()
			if err != nil {
				log.Printf("[BARRIDO] error al listar vencidas: %v", err)
			} else if n > 0 {
				log.Printf("[BARRIDO] %d solicitud(es) rechazadas por vencimiento", n)
			} else {
				log.Println("[BARRIDO] Sin propuestas vencidas")
			}

			time.Sleep(intervalo)
		}
	}()
}
