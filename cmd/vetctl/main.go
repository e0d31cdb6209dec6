// vetctl es la consola de administración de la clínica: habla con el
// backend por HTTP y persiste la sesión en ~/.vetclinic/session.json.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"vetclinic-admin/internal/client"
	"vetclinic-admin/internal/console"
	"vetclinic-admin/internal/platform/logger"
)

// app agrupa lo que toda subcomando necesita ya construido.
type app struct {
	api *client.Client
	log zerolog.Logger
}

// fail imprime el error en el formato de la consola y corta el comando.
func (a *app) fail(err error) error {
	return fmt.Errorf("%s", console.ReportError(a.log, err))
}

// requireRoles corta cuando el usuario de la sesión no tiene ninguno de
// los roles; la superficie de comandos visible depende del rol principal.
func (a *app) requireRoles(roles ...string) error {
	u := a.api.Session().User()
	if u == nil {
		return fmt.Errorf("no hay sesión activa, use `vetctl login`")
	}
	for _, want := range roles {
		for _, have := range u.Roles {
			if have == want || have == "ROLE_"+want {
				return nil
			}
		}
	}
	return fmt.Errorf("su rol (%s) no tiene acceso a este comando", u.PrimaryRole)
}

func staffOnly(a *app) error {
	return a.requireRoles("ADMIN", "VETERINARIAN", "RECEPTIONIST")
}

func main() {
	a := &app{}

	var serverURL string
	var verbose bool

	root := &cobra.Command{
		Use:           "vetctl",
		Short:         "Consola de administración de la clínica veterinaria",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := "error"
			if verbose {
				level = "debug"
			}
			a.log = logger.New(logger.Options{Level: level, App: "vetctl"})

			path, err := client.DefaultSessionPath()
			if err != nil {
				return err
			}
			store, err := client.NewSessionStore(path)
			if err != nil {
				return err
			}
			a.api = client.New(serverURL, store, a.log)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&serverURL, "server",
		envOr("VETCLINIC_SERVER", "http://localhost:8080"), "URL del backend")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log detallado")

	root.AddCommand(
		loginCmd(a), logoutCmd(a), whoamiCmd(a), registerCmd(a),
		dashboardCmd(a), agendaCmd(a),
		ownersCmd(a), patientsCmd(a), appointmentsCmd(a),
		inventoryCmd(a), prescriptionsCmd(a), consentsCmd(a),
		servicesCmd(a), usersCmd(a), reportsCmd(a),
		portalCmd(a),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
