package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/medicore/hospital-desk/internal/dashboard"
	"github.com/medicore/hospital-desk/internal/staff"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Admin portal: manage staff and view dashboards",
	}
	cmd.AddCommand(newStaffListCmd())
	cmd.AddCommand(newStaffAddCmd())
	cmd.AddCommand(newStaffUpdateCmd())
	cmd.AddCommand(newStaffRemoveCmd())
	cmd.AddCommand(newDashboardCmd())
	return cmd
}

func directoryFor(a *app, role staff.Role) *staff.Directory {
	return staff.NewDirectory(role, a.api, a.log)
}

func newStaffListCmd() *cobra.Command {
	var roleFlag string

	cmd := &cobra.Command{
		Use:   "staff-list",
		Short: "List staff of one role",
		RunE: withPortal(staff.RoleAdmin, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			role, err := staff.ParseRole(roleFlag)
			if err != nil {
				return err
			}

			dir := directoryFor(a, role)
			if err := dir.Refresh(ctx); err != nil {
				return err
			}

			tw := newTable()
			fmt.Fprintln(tw, "LOGIN ID\tNAME\tEMAIL\tPHONE\tSPECIALIZATION")
			for _, rec := range dir.All() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", rec.LoginID, rec.Name, rec.Email, rec.Phone, rec.Specialization)
			}
			return tw.Flush()
		}),
	}

	cmd.Flags().StringVar(&roleFlag, "role", "doctor", "staff role: admin, doctor, or receptionist")
	return cmd
}

func newStaffAddCmd() *cobra.Command {
	var (
		roleFlag string
		rec      staff.Record
		password string
	)

	cmd := &cobra.Command{
		Use:   "staff-add",
		Short: "Register a new staff member",
		RunE: withPortal(staff.RoleAdmin, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			role, err := staff.ParseRole(roleFlag)
			if err != nil {
				return err
			}

			dir := directoryFor(a, role)
			created, err := dir.Register(ctx, rec, password)
			if err != nil {
				return err
			}

			fmt.Printf("registered %s %q (login id %s)\n", created.Role, created.Name, created.LoginID)
			return nil
		}),
	}

	cmd.Flags().StringVar(&roleFlag, "role", "", "staff role: admin, doctor, or receptionist")
	cmd.Flags().StringVar(&rec.LoginID, "login-id", "", "login id for the new account")
	cmd.Flags().StringVar(&rec.Name, "name", "", "full name")
	cmd.Flags().StringVar(&rec.Email, "email", "", "email address")
	cmd.Flags().StringVar(&rec.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&rec.Specialization, "specialization", "", "doctor specialization")
	cmd.Flags().IntVar(&rec.Experience, "experience", 0, "doctor years of experience")
	cmd.Flags().StringVar(&rec.Education, "education", "", "doctor education")
	cmd.Flags().IntVar(&rec.ConsultationFee, "fee", 0, "doctor consultation fee")
	cmd.Flags().StringVar(&password, "new-password", "", "password for the new account")
	_ = cmd.MarkFlagRequired("role")
	_ = cmd.MarkFlagRequired("login-id")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("new-password")
	return cmd
}

func newStaffUpdateCmd() *cobra.Command {
	var (
		roleFlag string
		loginID  string
		name     string
		email    string
		phone    string
	)

	cmd := &cobra.Command{
		Use:   "staff-update",
		Short: "Update a staff member addressed by login id",
		RunE: withPortal(staff.RoleAdmin, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			role, err := staff.ParseRole(roleFlag)
			if err != nil {
				return err
			}

			dir := directoryFor(a, role)
			if err := dir.Refresh(ctx); err != nil {
				return err
			}

			var upd staff.Update
			if cmd.Flags().Changed("name") {
				upd.Name = &name
			}
			if cmd.Flags().Changed("email") {
				upd.Email = &email
			}
			if cmd.Flags().Changed("phone") {
				upd.Phone = &phone
			}

			updated, err := dir.UpdateByLoginID(ctx, loginID, upd)
			if err != nil {
				return err
			}

			fmt.Printf("updated %s %q\n", updated.Role, updated.LoginID)
			return nil
		}),
	}

	cmd.Flags().StringVar(&roleFlag, "role", "", "staff role: admin, doctor, or receptionist")
	cmd.Flags().StringVar(&loginID, "login-id", "", "login id of the record to update")
	cmd.Flags().StringVar(&name, "name", "", "new full name")
	cmd.Flags().StringVar(&email, "email", "", "new email address")
	cmd.Flags().StringVar(&phone, "phone", "", "new phone number")
	_ = cmd.MarkFlagRequired("role")
	_ = cmd.MarkFlagRequired("login-id")
	return cmd
}

func newStaffRemoveCmd() *cobra.Command {
	var (
		roleFlag string
		loginID  string
	)

	cmd := &cobra.Command{
		Use:   "staff-remove",
		Short: "Remove a staff member addressed by login id",
		RunE: withPortal(staff.RoleAdmin, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			role, err := staff.ParseRole(roleFlag)
			if err != nil {
				return err
			}

			dir := directoryFor(a, role)
			if err := dir.Refresh(ctx); err != nil {
				return err
			}
			if err := dir.RemoveByLoginID(ctx, loginID); err != nil {
				return err
			}

			fmt.Printf("removed %s %q\n", role, loginID)
			return nil
		}),
	}

	cmd.Flags().StringVar(&roleFlag, "role", "", "staff role: admin, doctor, or receptionist")
	cmd.Flags().StringVar(&loginID, "login-id", "", "login id of the record to remove")
	_ = cmd.MarkFlagRequired("role")
	_ = cmd.MarkFlagRequired("login-id")
	return cmd
}

func newDashboardCmd() *cobra.Command {
	var seed uint64

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the admin dashboard figures",
		RunE: withPortal(staff.RoleAdmin, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			report := dashboard.Synthetic(seed)

			for _, card := range report.Cards {
				fmt.Printf("%-16s %d\n", card.Title, card.Value)
			}

			fmt.Println("\nRevenue by month:")
			tw := newTable()
			fmt.Fprintln(tw, "MONTH\tPOSITIVE\tNEGATIVE")
			for _, p := range report.Revenue {
				fmt.Fprintf(tw, "%s\t%d\t%d\n", p.Month, p.Positive, p.Negative)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			fmt.Println("\nDepartment share:")
			for _, d := range report.Departments {
				fmt.Printf("%-14s %d%%\n", d.Department, d.Value)
			}
			return nil
		}),
	}

	cmd.Flags().Uint64Var(&seed, "seed", 1, "seed for the synthetic figures")
	return cmd
}
