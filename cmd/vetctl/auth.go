package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"vetclinic-admin/internal/client"
)

func readLine(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func loginCmd(a *app) *cobra.Command {
	var username string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Iniciar sesión",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if username == "" {
				if username, err = readLine("Usuario o correo: "); err != nil {
					return err
				}
			}
			password, err := readPassword("Contraseña: ")
			if err != nil {
				return err
			}

			user, err := a.api.Auth.Login(cmd.Context(), username, password)
			if err != nil {
				return a.fail(err)
			}
			fmt.Printf("Bienvenido, %s (%s)\n", user.FullName, user.PrimaryRole)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "usuario o correo")
	return cmd
}

func logoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Cerrar sesión",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.api.Auth.Logout(cmd.Context()); err != nil {
				return a.fail(err)
			}
			fmt.Println("Sesión cerrada")
			return nil
		},
	}
}

func whoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Mostrar el usuario de la sesión",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.api.Auth.Me(cmd.Context())
			if err != nil {
				return a.fail(err)
			}
			fmt.Printf("%s <%s>\nRoles: %s (principal: %s)\n",
				user.FullName, user.Email, strings.Join(user.Roles, ", "), user.PrimaryRole)
			return nil
		},
	}
}

func registerCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Crear una cuenta de propietario",
		RunE: func(cmd *cobra.Command, args []string) error {
			var in client.RegisterInput
			var err error
			if in.Username, err = readLine("Usuario: "); err != nil {
				return err
			}
			if in.Email, err = readLine("Correo: "); err != nil {
				return err
			}
			if in.FirstName, err = readLine("Nombre: "); err != nil {
				return err
			}
			if in.LastName, err = readLine("Apellido: "); err != nil {
				return err
			}
			if in.Password, err = readPassword("Contraseña: "); err != nil {
				return err
			}

			user, err := a.api.Auth.Register(cmd.Context(), in)
			if err != nil {
				return a.fail(err)
			}
			fmt.Printf("Cuenta creada para %s; inicie sesión con `vetctl login`\n", user.Username)
			return nil
		},
	}
}
