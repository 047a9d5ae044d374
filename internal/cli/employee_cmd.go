package cli

import (
	"fmt"

	"github.com/alexanderramin/staffclock/internal/cli/formatter"
	"github.com/alexanderramin/staffclock/internal/domain"
	"github.com/alexanderramin/staffclock/internal/service"
	"github.com/spf13/cobra"
)

func newEmployeeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "employee",
		Aliases: []string{"employees"},
		Short:   "Manage the employee registry",
	}

	cmd.AddCommand(
		newEmployeeAddCmd(app),
		newEmployeeListCmd(app),
		newEmployeeUpdateCmd(app),
		newEmployeeStatusCmd(app, "deactivate", "Deactivate an employee, closing any running session", app.deactivate),
		newEmployeeStatusCmd(app, "reactivate", "Reactivate an employee", app.reactivate),
	)

	return cmd
}

func newEmployeeAddCmd(app *App) *cobra.Command {
	var name, email, role, department string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new employee",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e := &domain.Employee{
				Name:       name,
				Email:      email,
				Role:       domain.Role(role),
				Department: department,
			}
			if err := app.Employees.Create(cmd.Context(), e); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s <%s> as %s\n  id: %s\n",
				formatter.Bold(e.Name), e.Email, formatter.RoleBadge(e.Role), e.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleEmployee), "role: employee or hr")
	cmd.Flags().StringVar(&department, "department", "", "department")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newEmployeeListCmd(app *App) *cobra.Command {
	var q service.EmployeeQuery

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List employees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := app.Employees.List(cmd.Context(), q)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatEmployees(page))
			return nil
		},
	}

	cmd.Flags().StringVarP(&q.Search, "search", "s", "", "filter by name, email or department")
	cmd.Flags().BoolVar(&q.IncludeInactive, "all", false, "include inactive employees")
	cmd.Flags().BoolVar(&q.OnlyInactive, "inactive", false, "only inactive employees")
	cmd.Flags().IntVar(&q.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&q.PerPage, "per-page", 0, "rows per page (default from config)")
	return cmd
}

func newEmployeeUpdateCmd(app *App) *cobra.Command {
	var name, email, role, department, status string

	cmd := &cobra.Command{
		Use:   "update <employee-id>",
		Short: "Change an employee's details; only the given flags are applied",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var u service.EmployeeUpdate
			flags := cmd.Flags()
			if flags.Changed("name") {
				u.Name = &name
			}
			if flags.Changed("email") {
				u.Email = &email
			}
			if flags.Changed("role") {
				r := domain.Role(role)
				u.Role = &r
			}
			if flags.Changed("department") {
				u.Department = &department
			}
			if flags.Changed("status") {
				st := domain.EmployeeStatus(status)
				u.Status = &st
			}
			if u == (service.EmployeeUpdate{}) {
				return NewCLIError(ExitGeneral, "nothing to update: pass at least one of --name, --email, --role, --department, --status")
			}

			e, err := app.Employees.Update(cmd.Context(), args[0], u)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s <%s> %s %s\n",
				formatter.Bold(e.Name), e.Email, formatter.RoleBadge(e.Role), formatter.EmployeeStatusPill(e.Status))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&role, "role", "", "role: employee or hr")
	cmd.Flags().StringVar(&department, "department", "", "department")
	cmd.Flags().StringVar(&status, "status", "", "status: active or inactive")
	return cmd
}

func newEmployeeStatusCmd(app *App, use, short string, apply func(*cobra.Command, string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <employee-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return apply(cmd, args[0])
		},
	}
}

func (a *App) deactivate(cmd *cobra.Command, id string) error {
	if err := a.Employees.Deactivate(cmd.Context(), id); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deactivated %s\n", id)
	return nil
}

func (a *App) reactivate(cmd *cobra.Command, id string) error {
	if err := a.Employees.Reactivate(cmd.Context(), id); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Reactivated %s\n", id)
	return nil
}
