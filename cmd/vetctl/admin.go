package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"vetclinic-admin/internal/client"
	"vetclinic-admin/internal/console"
)

func dashboardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Resumen del día",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return staffOnly(a)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := a.api.Dashboard.Stats(cmd.Context())
			if err != nil {
				return a.fail(err)
			}
			console.Table(os.Stdout, []string{"INDICADOR", "VALOR"}, [][]string{
				{"Pacientes", strconv.FormatInt(stats.TotalPatients, 10)},
				{"Propietarios", strconv.FormatInt(stats.TotalOwners, 10)},
				{"Citas hoy", strconv.Itoa(stats.AppointmentsToday)},
				{"Citas programadas", strconv.FormatInt(stats.ScheduledTotal, 10)},
				{"Stock bajo", strconv.Itoa(stats.LowStockItems)},
				{"Agotados", strconv.Itoa(stats.OutOfStockItems)},
				{"Consentimientos pendientes", strconv.Itoa(stats.PendingConsents)},
				{"Prescripciones activas", strconv.Itoa(stats.ActivePrescriptions)},
			})
			return nil
		},
	}
}

func agendaCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "Agenda de citas",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return staffOnly(a)
		},
	}

	var date string
	day := &cobra.Command{
		Use:   "day",
		Short: "Agenda de un día",
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := a.api.Agenda.Daily(cmd.Context(), date)
			if err != nil {
				return a.fail(err)
			}
			fmt.Printf("Agenda del %s\n", view.Date)
			rows := make([][]string, 0, len(view.Appointments))
			for _, e := range view.Appointments {
				st := console.AppointmentStyle(e.Status)
				rows = append(rows, []string{
					e.ScheduledDate.Format("15:04"), e.Type, st.Paint(st.Label), e.Reason,
				})
			}
			console.Table(os.Stdout, []string{"HORA", "TIPO", "ESTADO", "MOTIVO"}, rows)
			return nil
		},
	}
	day.Flags().StringVar(&date, "date", "", "YYYY-MM-DD, vacío usa hoy")

	var weekDate string
	week := &cobra.Command{
		Use:   "week",
		Short: "Agenda de la semana (lunes a domingo)",
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := a.api.Agenda.Weekly(cmd.Context(), weekDate)
			if err != nil {
				return a.fail(err)
			}
			fmt.Printf("Semana del %s\n", view.WeekStart)
			for _, d := range view.Days {
				fmt.Printf("  %s: %d citas\n", d.Date, len(d.Appointments))
			}
			return nil
		},
	}
	week.Flags().StringVar(&weekDate, "date", "", "cualquier día de la semana")

	var year, month int
	monthCmd := &cobra.Command{
		Use:   "month",
		Short: "Calendario mensual",
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := a.api.Agenda.Monthly(cmd.Context(), year, month)
			if err != nil {
				return a.fail(err)
			}
			fmt.Print(console.RenderMonth(view))
			return nil
		},
	}
	monthCmd.Flags().IntVar(&year, "year", 0, "año, 0 usa el actual")
	monthCmd.Flags().IntVar(&month, "month", 0, "mes 1-12, 0 usa el actual")

	cmd.AddCommand(day, week, monthCmd)
	return cmd
}

func servicesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "services",
		Short: "Catálogo de servicios",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return staffOnly(a)
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Listar servicios activos",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.api.Services.Active(cmd.Context())
			if err != nil {
				return a.fail(err)
			}
			rows := make([][]string, 0, len(items))
			for _, s := range items {
				rows = append(rows, []string{
					s.ID, s.Name, s.Category,
					fmt.Sprintf("$%.2f", s.Price),
					fmt.Sprintf("%d min", s.DurationMinutes),
				})
			}
			console.Table(os.Stdout, []string{"ID", "NOMBRE", "CATEGORÍA", "PRECIO", "DURACIÓN"}, rows)
			return nil
		},
	}

	toggle := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Activar o desactivar un servicio",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.api.Services.ToggleActive(cmd.Context(), args[0])
			if err != nil {
				return a.fail(err)
			}
			state := "desactivado"
			if s.Active {
				state = "activo"
			}
			fmt.Printf("%s ahora está %s\n", s.Name, state)
			return nil
		},
	}

	cmd.AddCommand(list, toggle)
	return cmd
}

func usersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Usuarios del sistema (solo ADMIN)",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.requireRoles("ADMIN")
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Listar usuarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.api.Users.List(cmd.Context(), "", "")
			if err != nil {
				return a.fail(err)
			}
			rows := make([][]string, 0, len(items))
			for _, u := range items {
				active := "sí"
				if !u.Active {
					active = "no"
				}
				rows = append(rows, []string{u.ID, u.Username, u.FullName, strings.Join(u.Roles, ","), active})
			}
			console.Table(os.Stdout, []string{"ID", "USUARIO", "NOMBRE", "ROLES", "ACTIVO"}, rows)
			return nil
		},
	}

	toggle := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Habilitar o deshabilitar un usuario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.api.Users.ToggleActive(cmd.Context(), args[0])
			if err != nil {
				return a.fail(err)
			}
			state := "deshabilitado"
			if u.Active {
				state = "habilitado"
			}
			fmt.Printf("%s ahora está %s\n", u.Username, state)
			return nil
		},
	}

	cmd.AddCommand(list, toggle)
	return cmd
}

func reportsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Reportes descargables",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return staffOnly(a)
		},
	}

	var format, start, end, outDir string
	download := func(fetch func() (client.File, error)) error {
		f, err := fetch()
		if err != nil {
			return a.fail(err)
		}
		path, err := client.SaveFile(outDir, f)
		if err != nil {
			return err
		}
		fmt.Printf("Reporte guardado en %s\n", path)
		return nil
	}

	appointments := &cobra.Command{
		Use:   "appointments",
		Short: "Reporte de citas por rango de fechas",
		RunE: func(cmd *cobra.Command, args []string) error {
			return download(func() (client.File, error) {
				return a.api.Reports.Appointments(cmd.Context(), format, start, end)
			})
		},
	}
	appointments.Flags().StringVar(&start, "start", "", "YYYY-MM-DD")
	appointments.Flags().StringVar(&end, "end", "", "YYYY-MM-DD")

	patients := &cobra.Command{
		Use:   "patients",
		Short: "Censo de pacientes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return download(func() (client.File, error) {
				return a.api.Reports.Patients(cmd.Context(), format)
			})
		},
	}

	services := &cobra.Command{
		Use:   "services",
		Short: "Catálogo de servicios",
		RunE: func(cmd *cobra.Command, args []string) error {
			return download(func() (client.File, error) {
				return a.api.Reports.Services(cmd.Context(), format)
			})
		},
	}

	cmd.PersistentFlags().StringVar(&format, "format", "PDF", "PDF, CSV o EXCEL")
	cmd.PersistentFlags().StringVar(&outDir, "out", ".", "directorio de salida")
	cmd.AddCommand(appointments, patients, services)
	return cmd
}
