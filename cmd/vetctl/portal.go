package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vetclinic-admin/internal/client"
	"vetclinic-admin/internal/console"
)

func portalCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "portal",
		Short: "Portal de propietarios (rol OWNER)",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.requireRoles("OWNER")
		},
	}

	profile := &cobra.Command{
		Use:   "profile",
		Short: "Mi perfil",
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := a.api.OwnerPortal.Profile(cmd.Context())
			if err != nil {
				return a.fail(err)
			}
			fmt.Printf("%s\n%s · %s\n%s\n", o.FullName, o.Phone, o.Email, o.Address)
			return nil
		},
	}

	pets := &cobra.Command{
		Use:   "pets",
		Short: "Mis mascotas",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.api.OwnerPortal.MyPets(cmd.Context())
			if err != nil {
				return a.fail(err)
			}
			rows := make([][]string, 0, len(items))
			for _, p := range items {
				rows = append(rows, []string{p.ID, p.Name, p.Species, p.Breed})
			}
			console.Table(os.Stdout, []string{"ID", "NOMBRE", "ESPECIE", "RAZA"}, rows)
			return nil
		},
	}

	appointments := &cobra.Command{
		Use:   "appointments",
		Short: "Mis próximas citas",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.api.OwnerPortal.UpcomingAppointments(cmd.Context())
			if err != nil {
				return a.fail(err)
			}
			rows := make([][]string, 0, len(items))
			for _, ap := range items {
				st := console.AppointmentStyle(ap.Status)
				rows = append(rows, []string{
					ap.ScheduledDate.Format("2006-01-02 15:04"), ap.Type, st.Paint(st.Label), ap.Reason,
				})
			}
			console.Table(os.Stdout, []string{"FECHA", "TIPO", "ESTADO", "MOTIVO"}, rows)
			return nil
		},
	}

	var patientID, when, apptType, reason string
	request := &cobra.Command{
		Use:   "request",
		Short: "Solicitar una cita para una mascota",
		RunE: func(cmd *cobra.Command, args []string) error {
			ap, err := a.api.OwnerPortal.RequestAppointment(cmd.Context(), client.AppointmentRequest{
				PatientID:     patientID,
				ScheduledDate: when,
				Type:          apptType,
				Reason:        reason,
			})
			if err != nil {
				return a.fail(err)
			}
			st := console.AppointmentStyle(ap.Status)
			fmt.Printf("Cita solicitada para el %s (%s)\n",
				ap.ScheduledDate.Format("2006-01-02 15:04"), st.Paint(st.Label))
			return nil
		},
	}
	request.Flags().StringVar(&patientID, "patient", "", "ID de la mascota")
	request.Flags().StringVar(&when, "date", "", "fecha y hora RFC3339")
	request.Flags().StringVar(&apptType, "type", "CONSULTATION", "tipo de cita")
	request.Flags().StringVar(&reason, "reason", "", "motivo")
	_ = request.MarkFlagRequired("patient")
	_ = request.MarkFlagRequired("date")

	consents := &cobra.Command{
		Use:   "consents",
		Short: "Mis consentimientos",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.api.OwnerPortal.MyConsents(cmd.Context())
			if err != nil {
				return a.fail(err)
			}
			printConsents(items)
			return nil
		},
	}

	sign := &cobra.Command{
		Use:   "sign <id>",
		Short: "Firmar un consentimiento pendiente",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.api.OwnerPortal.SignConsent(cmd.Context(), args[0])
			if err != nil {
				return a.fail(err)
			}
			st := console.ConsentStyle(c.Status)
			fmt.Printf("%s: %s\n", c.Title, st.Paint(st.Label))
			return nil
		},
	}

	cmd.AddCommand(profile, pets, appointments, request, consents, sign)
	return cmd
}
