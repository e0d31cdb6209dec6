package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"vetclinic-admin/internal/client"
	"vetclinic-admin/internal/console"
)

func ownersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "owners",
		Short: "Propietarios",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return staffOnly(a)
		},
	}

	var search string
	list := &cobra.Command{
		Use:   "list",
		Short: "Listar propietarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.api.Owners.List(cmd.Context(), search)
			if err != nil {
				return a.fail(err)
			}
			rows := make([][]string, 0, len(items))
			for _, o := range items {
				rows = append(rows, []string{o.ID, o.FullName, o.DocumentNumber, o.Phone, o.Email})
			}
			console.Table(os.Stdout, []string{"ID", "NOMBRE", "DOCUMENTO", "TELÉFONO", "CORREO"}, rows)
			return nil
		},
	}
	list.Flags().StringVar(&search, "search", "", "filtro por nombre o documento")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Ver un propietario y sus mascotas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := a.api.Owners.Get(cmd.Context(), args[0])
			if err != nil {
				return a.fail(err)
			}
			fmt.Printf("%s — %s %s\n%s · %s\n", o.FullName, o.DocumentType, o.DocumentNumber, o.Phone, o.Email)

			pets, err := a.api.Patients.ByOwner(cmd.Context(), o.ID)
			if err != nil {
				return a.fail(err)
			}
			rows := make([][]string, 0, len(pets))
			for _, p := range pets {
				rows = append(rows, []string{p.ID, p.Name, p.Species, p.Breed})
			}
			fmt.Println("\nMascotas:")
			console.Table(os.Stdout, []string{"ID", "NOMBRE", "ESPECIE", "RAZA"}, rows)
			return nil
		},
	}

	cmd.AddCommand(list, get)
	return cmd
}

func patientsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patients",
		Short: "Pacientes",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return staffOnly(a)
		},
	}

	var search, species string
	list := &cobra.Command{
		Use:   "list",
		Short: "Listar pacientes",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.api.Patients.List(cmd.Context(), search, species)
			if err != nil {
				return a.fail(err)
			}
			rows := make([][]string, 0, len(items))
			for _, p := range items {
				rows = append(rows, []string{p.ID, p.Name, p.Species, p.Breed, strconv.Itoa(p.Age)})
			}
			console.Table(os.Stdout, []string{"ID", "NOMBRE", "ESPECIE", "RAZA", "EDAD"}, rows)
			return nil
		},
	}
	list.Flags().StringVar(&search, "search", "", "filtro por nombre")
	list.Flags().StringVar(&species, "species", "", "filtro por especie")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Ver un paciente con su historia",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.api.Patients.Get(cmd.Context(), args[0])
			if err != nil {
				return a.fail(err)
			}
			fmt.Printf("%s — %s %s, %d años\n", p.Name, p.Species, p.Breed, p.Age)

			records, err := a.api.MedicalRecords.ByPatient(cmd.Context(), p.ID)
			if err != nil {
				return a.fail(err)
			}
			rows := make([][]string, 0, len(records))
			for _, rec := range records {
				rows = append(rows, []string{rec.RecordDate.Format("2006-01-02"), rec.Diagnosis, rec.Treatment})
			}
			fmt.Println("\nHistoria clínica:")
			console.Table(os.Stdout, []string{"FECHA", "DIAGNÓSTICO", "TRATAMIENTO"}, rows)
			return nil
		},
	}

	cmd.AddCommand(list, get)
	return cmd
}

func appointmentsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "appointments",
		Short: "Citas",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return staffOnly(a)
		},
	}

	var status string
	list := &cobra.Command{
		Use:   "list",
		Short: "Listar citas",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.api.Appointments.List(cmd.Context(), client.AppointmentFilter{Status: status})
			if err != nil {
				return a.fail(err)
			}
			printAppointments(items)
			return nil
		},
	}
	list.Flags().StringVar(&status, "status", "", "filtro por estado")

	upcoming := &cobra.Command{
		Use:   "upcoming",
		Short: "Próximas citas",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.api.Appointments.Upcoming(cmd.Context(), 10)
			if err != nil {
				return a.fail(err)
			}
			printAppointments(items)
			return nil
		},
	}

	setStatus := &cobra.Command{
		Use:   "set-status <id> <estado>",
		Short: "Avanzar el estado de una cita",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			appt, err := a.api.Appointments.UpdateStatus(cmd.Context(), args[0], args[1])
			if err != nil {
				return a.fail(err)
			}
			st := console.AppointmentStyle(appt.Status)
			fmt.Printf("Cita %s ahora %s\n", appt.ID, st.Paint(st.Label))
			return nil
		},
	}

	cancel := &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancelar una cita",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			appt, err := a.api.Appointments.Cancel(cmd.Context(), args[0])
			if err != nil {
				return a.fail(err)
			}
			st := console.AppointmentStyle(appt.Status)
			fmt.Printf("Cita %s %s\n", appt.ID, st.Paint(st.Label))
			return nil
		},
	}

	cmd.AddCommand(list, upcoming, setStatus, cancel)
	return cmd
}

func printAppointments(items []client.Appointment) {
	rows := make([][]string, 0, len(items))
	for _, ap := range items {
		st := console.AppointmentStyle(ap.Status)
		rows = append(rows, []string{
			ap.ID,
			ap.ScheduledDate.Format("2006-01-02 15:04"),
			ap.Type,
			st.Paint(st.Label),
			ap.Reason,
		})
	}
	console.Table(os.Stdout, []string{"ID", "FECHA", "TIPO", "ESTADO", "MOTIVO"}, rows)
}
