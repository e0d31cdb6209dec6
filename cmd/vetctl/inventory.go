package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"vetclinic-admin/internal/client"
	"vetclinic-admin/internal/console"
)

func inventoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Inventario",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return staffOnly(a)
		},
	}

	var search, category string
	list := &cobra.Command{
		Use:   "list",
		Short: "Listar ítems",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.api.Inventory.List(cmd.Context(), search, category)
			if err != nil {
				return a.fail(err)
			}
			printItems(items)
			return nil
		},
	}
	list.Flags().StringVar(&search, "search", "", "filtro por nombre")
	list.Flags().StringVar(&category, "category", "", "filtro por categoría")

	low := &cobra.Command{
		Use:   "low-stock",
		Short: "Ítems con stock bajo o agotados",
		RunE: func(cmd *cobra.Command, args []string) error {
			lowItems, err := a.api.Inventory.LowStock(cmd.Context())
			if err != nil {
				return a.fail(err)
			}
			outItems, err := a.api.Inventory.OutOfStock(cmd.Context())
			if err != nil {
				return a.fail(err)
			}
			printItems(append(outItems, lowItems...))
			return nil
		},
	}

	adjust := &cobra.Command{
		Use:   "adjust <id> <delta>",
		Short: "Ajustar existencia (delta negativo descuenta)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			delta, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("delta debe ser un entero")
			}
			item, err := a.api.Inventory.AdjustQuantity(cmd.Context(), args[0], delta)
			if err != nil {
				return a.fail(err)
			}
			st := console.StockStyle(item.Status)
			fmt.Printf("%s: %d unidades (%s)\n", item.Name, item.Quantity, st.Paint(st.Label))
			return nil
		},
	}

	expiring := &cobra.Command{
		Use:   "expiring",
		Short: "Ítems próximos a vencer",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.api.Inventory.Expiring(cmd.Context(), 30)
			if err != nil {
				return a.fail(err)
			}
			printItems(items)
			return nil
		},
	}

	cmd.AddCommand(list, low, adjust, expiring)
	return cmd
}

func printItems(items []client.InventoryItem) {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		st := console.StockStyle(it.Status)
		expires := ""
		if it.ExpirationDate != nil {
			expires = it.ExpirationDate.Format("2006-01-02")
		}
		rows = append(rows, []string{
			it.ID, it.Name, it.Category,
			strconv.Itoa(it.Quantity), st.Paint(st.Label), expires,
		})
	}
	console.Table(os.Stdout, []string{"ID", "NOMBRE", "CATEGORÍA", "CANT", "ESTADO", "VENCE"}, rows)
}

func prescriptionsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prescriptions",
		Short: "Prescripciones",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return staffOnly(a)
		},
	}

	var patientID string
	list := &cobra.Command{
		Use:   "list",
		Short: "Listar prescripciones activas",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.api.Prescriptions.Active(cmd.Context(), patientID)
			if err != nil {
				return a.fail(err)
			}
			rows := make([][]string, 0, len(items))
			for _, p := range items {
				rows = append(rows, []string{
					p.ID, p.MedicationName, p.Dosage, p.Frequency,
					fmt.Sprintf("%.0f%%", p.Progress),
				})
			}
			console.Table(os.Stdout, []string{"ID", "MEDICAMENTO", "DOSIS", "FRECUENCIA", "AVANCE"}, rows)
			return nil
		},
	}
	list.Flags().StringVar(&patientID, "patient", "", "filtro por paciente")

	var format, outDir string
	export := &cobra.Command{
		Use:   "export",
		Short: "Exportar el listado (PDF, CSV o EXCEL)",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.api.Prescriptions.Export(cmd.Context(), format)
			if err != nil {
				return a.fail(err)
			}
			path, err := client.SaveFile(outDir, f)
			if err != nil {
				return err
			}
			fmt.Printf("Exportado a %s\n", path)
			return nil
		},
	}
	export.Flags().StringVar(&format, "format", "PDF", "PDF, CSV o EXCEL")
	export.Flags().StringVar(&outDir, "out", ".", "directorio de salida")

	cmd.AddCommand(list, export)
	return cmd
}

func consentsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "consents",
		Short: "Consentimientos informados",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return staffOnly(a)
		},
	}

	pending := &cobra.Command{
		Use:   "pending",
		Short: "Consentimientos pendientes de firma",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.api.Consents.Pending(cmd.Context())
			if err != nil {
				return a.fail(err)
			}
			printConsents(items)
			return nil
		},
	}

	var signedBy string
	sign := &cobra.Command{
		Use:   "sign <id>",
		Short: "Registrar la firma de un consentimiento",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.api.Consents.Sign(cmd.Context(), args[0], signedBy)
			if err != nil {
				return a.fail(err)
			}
			st := console.ConsentStyle(c.Status)
			fmt.Printf("%s: %s por %s\n", c.Title, st.Paint(st.Label), c.SignedBy)
			return nil
		},
	}
	sign.Flags().StringVar(&signedBy, "signed-by", "", "nombre de quien firma")
	_ = sign.MarkFlagRequired("signed-by")

	cmd.AddCommand(pending, sign)
	return cmd
}

func printConsents(items []client.InformedConsent) {
	rows := make([][]string, 0, len(items))
	for _, c := range items {
		st := console.ConsentStyle(c.Status)
		rows = append(rows, []string{c.ID, c.Title, c.ProcedureType, st.Paint(st.Label)})
	}
	console.Table(os.Stdout, []string{"ID", "TÍTULO", "PROCEDIMIENTO", "ESTADO"}, rows)
}
