package console

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rs/zerolog"

	"vetclinic-admin/internal/client"
)

// Table imprime filas alineadas con tabwriter.
func Table(w io.Writer, headers []string, rows [][]string) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	for i, h := range headers {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, h)
	}
	fmt.Fprintln(tw)
	for _, row := range rows {
		for i, cell := range row {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, cell)
		}
		fmt.Fprintln(tw)
	}
	_ = tw.Flush()
}

// ReportError deja el error en el log y devuelve el texto para el
// usuario: el mensaje del backend tal cual cuando existe, un fallback
// en español cuando no.
func ReportError(log zerolog.Logger, err error) string {
	log.Debug().Err(err).Msg("operación fallida")

	if errors.Is(err, client.ErrSessionExpired) {
		return "La sesión expiró, inicie sesión de nuevo con `vetctl login`"
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if apiErr != nil {
		return "Error interno del servidor"
	}
	return "No se pudo contactar el servidor, verifique la conexión"
}
