package main

import (
	"fmt"
	"strings"

	"github.com/comexweb/internal/db"
	"github.com/comexweb/internal/service"
	"github.com/spf13/cobra"
)

var (
	userEmail    string
	userName     string
	userPassword string
	userRole     string
)

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create a back office account",
	RunE:  runCreateUser,
}

func init() {
	createUserCmd.Flags().StringVar(&userEmail, "email", "", "login email")
	createUserCmd.Flags().StringVar(&userName, "name", "", "display name")
	createUserCmd.Flags().StringVar(&userPassword, "password", "", "password (min. 8 caracteres)")
	createUserCmd.Flags().StringVar(&userRole, "role", db.RoleEditor, "ADMIN or EDITOR")
	_ = createUserCmd.MarkFlagRequired("email")
	_ = createUserCmd.MarkFlagRequired("password")
}

func runCreateUser(cmd *cobra.Command, args []string) error {
	gdb, err := openDB()
	if err != nil {
		return err
	}

	user, err := service.NewUserService(gdb).Create(cmd.Context(), service.UserInput{
		Email:    userEmail,
		Name:     userName,
		Password: userPassword,
		Role:     strings.ToUpper(userRole),
	})
	if err != nil {
		return fmt.Errorf("创建用户失败: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "usuario creado: %s (%s)\n", user.Email, user.Role)
	return nil
}
