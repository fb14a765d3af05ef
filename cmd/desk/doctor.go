package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/medicore/hospital-desk/internal/appointment"
	"github.com/medicore/hospital-desk/internal/staff"
)

func newDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Doctor portal: own appointments and profile",
	}
	cmd.AddCommand(newDoctorAppointmentsCmd())
	cmd.AddCommand(newDoctorDecideCmd("confirm", appointment.StatusConfirmed))
	cmd.AddCommand(newDoctorDecideCmd("cancel", appointment.StatusCancelled))
	cmd.AddCommand(newDoctorProfileCmd())
	return cmd
}

func printAppointments(appts []appointment.Appointment) error {
	tw := newTable()
	fmt.Fprintln(tw, "ID\tPATIENT\tDOCTOR\tWHEN\tSTATUS\tREASON")
	for _, appt := range appts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			appt.ID, appt.Patient.Name, appt.Doctor.Name,
			appt.DateTime.Format(time.RFC3339), appt.Status, appt.Reason)
	}
	return tw.Flush()
}

func newDoctorAppointmentsCmd() *cobra.Command {
	var (
		search     string
		statusFlag string
	)

	cmd := &cobra.Command{
		Use:   "appointments",
		Short: "List the logged-in doctor's appointments",
		RunE: withPortal(staff.RoleDoctor, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			me, err := a.sess.LoadProfile(ctx)
			if err != nil {
				return err
			}

			ledger := appointment.NewLedger(a.api, a.api, a.log)
			if err := ledger.Refresh(ctx); err != nil {
				return err
			}

			return printAppointments(ledger.Select(appointment.View{
				DoctorID: me.ID,
				Search:   search,
				Status:   statusFlag,
			}))
		}),
	}

	cmd.Flags().StringVar(&search, "search", "", "filter by patient name")
	cmd.Flags().StringVar(&statusFlag, "status", appointment.StatusAll, "filter by status: pending, confirmed, cancelled, or all")
	return cmd
}

func newDoctorDecideCmd(verb string, to appointment.Status) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <appointment-id>",
		Short: verb + " a pending appointment",
		Args:  cobra.ExactArgs(1),
		RunE: withPortal(staff.RoleDoctor, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			ledger := appointment.NewLedger(a.api, a.api, a.log)
			if err := ledger.Refresh(ctx); err != nil {
				return err
			}
			if err := ledger.SetStatus(ctx, args[0], to); err != nil {
				return err
			}

			fmt.Printf("appointment %s is now %s\n", args[0], to)
			return nil
		}),
	}
}

func newDoctorProfileCmd() *cobra.Command {
	var (
		phone     string
		fee       int
		available bool
	)

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit the logged-in doctor's profile",
		RunE: withPortal(staff.RoleDoctor, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			me, err := a.sess.LoadProfile(ctx)
			if err != nil {
				return err
			}

			var upd staff.Update
			changed := false
			if cmd.Flags().Changed("phone") {
				upd.Phone = &phone
				changed = true
			}
			if cmd.Flags().Changed("fee") {
				upd.ConsultationFee = &fee
				changed = true
			}
			if cmd.Flags().Changed("available") {
				upd.Available = &available
				changed = true
			}

			if changed {
				me, err = a.api.UpdateUser(ctx, me.ID, upd)
				if err != nil {
					return err
				}
			}

			fmt.Printf("%s (%s)\n", me.Name, me.LoginID)
			fmt.Printf("specialization: %s, experience: %d years\n", me.Specialization, me.Experience)
			fmt.Printf("fee: %d, available: %v\n", me.ConsultationFee, me.Available)
			return nil
		}),
	}

	cmd.Flags().StringVar(&phone, "phone", "", "new phone number")
	cmd.Flags().IntVar(&fee, "fee", 0, "new consultation fee")
	cmd.Flags().BoolVar(&available, "available", false, "availability for new appointments")
	return cmd
}
