package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/medicore/hospital-desk/internal/appointment"
	"github.com/medicore/hospital-desk/internal/callrequest"
	"github.com/medicore/hospital-desk/internal/patient"
	"github.com/medicore/hospital-desk/internal/staff"
)

func newReceptionistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "receptionist",
		Short: "Receptionist portal: patients, appointments, call requests",
	}
	cmd.AddCommand(newPatientFindCmd())
	cmd.AddCommand(newPatientRegisterCmd())
	cmd.AddCommand(newBookCmd())
	cmd.AddCommand(newReceptionAppointmentsCmd())
	cmd.AddCommand(newReceptionDecideCmd("confirm", appointment.StatusConfirmed))
	cmd.AddCommand(newReceptionDecideCmd("cancel", appointment.StatusCancelled))
	cmd.AddCommand(newCallsCmd())
	cmd.AddCommand(newAttendCmd())
	return cmd
}

func printPatient(p patient.Patient) {
	fmt.Printf("%s (%s)\n", p.Name, p.PatientID)
	fmt.Printf("phone: %s, email: %s, age: %s, gender: %s\n", p.Phone, p.Email, p.Age, p.Gender)
	if p.MedicalHistory != "" {
		fmt.Printf("history: %s\n", p.MedicalHistory)
	}
	if p.EmergencyContact.Name != "" {
		fmt.Printf("emergency contact: %s (%s)\n", p.EmergencyContact.Name, p.EmergencyContact.Phone)
	}
}

func newPatientFindCmd() *cobra.Command {
	var phone string

	cmd := &cobra.Command{
		Use:   "patient-find",
		Short: "Look a patient up by phone number",
		RunE: withPortal(staff.RoleReceptionist, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			desk := patient.NewDesk(a.api, a.log)
			if err := desk.Search(ctx, phone); err != nil {
				return err
			}

			if p, ok := desk.Current(); ok {
				printPatient(p)
				return nil
			}

			fmt.Printf("no patient with phone %s; register with:\n", phone)
			fmt.Printf("  desk receptionist patient-register --phone %s --name ...\n", phone)
			return nil
		}),
	}

	cmd.Flags().StringVar(&phone, "phone", "", "phone number to search")
	_ = cmd.MarkFlagRequired("phone")
	return cmd
}

func newPatientRegisterCmd() *cobra.Command {
	var form patient.Patient

	cmd := &cobra.Command{
		Use:   "patient-register",
		Short: "Register a patient (or find them if the phone is known)",
		RunE: withPortal(staff.RoleReceptionist, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			desk := patient.NewDesk(a.api, a.log)
			desk.StartRegistration()

			merged := desk.Form()
			merged.Name = form.Name
			merged.Phone = form.Phone
			merged.Email = form.Email
			merged.Age = form.Age
			if form.Gender != "" {
				merged.Gender = form.Gender
			}
			merged.MedicalHistory = form.MedicalHistory
			merged.EmergencyContact = form.EmergencyContact
			desk.SetForm(merged)

			created, err := desk.Register(ctx)
			if err != nil {
				return err
			}

			printPatient(created)
			return nil
		}),
	}

	cmd.Flags().StringVar(&form.Name, "name", "", "patient name")
	cmd.Flags().StringVar(&form.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&form.Email, "email", "", "email address")
	cmd.Flags().StringVar(&form.Age, "age", "", "age")
	cmd.Flags().StringVar(&form.Gender, "gender", "", "gender (defaults to other)")
	cmd.Flags().StringVar(&form.MedicalHistory, "history", "", "medical history")
	cmd.Flags().StringVar(&form.EmergencyContact.Name, "emergency-name", "", "emergency contact name")
	cmd.Flags().StringVar(&form.EmergencyContact.Phone, "emergency-phone", "", "emergency contact phone")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("phone")
	return cmd
}

func newBookCmd() *cobra.Command {
	var (
		form appointment.BookingForm
		at   string
	)

	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book an appointment, registering the patient if needed",
		RunE: withPortal(staff.RoleReceptionist, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			when, err := time.Parse(time.RFC3339, at)
			if err != nil {
				return fmt.Errorf("invalid --at, want RFC3339: %w", err)
			}
			form.DateTime = when

			ledger := appointment.NewLedger(a.api, a.api, a.log)
			created, err := ledger.Book(ctx, form)
			if err != nil {
				return err
			}

			fmt.Printf("booked %s for %s with %s at %s\n",
				created.ID, created.Patient.Name, created.Doctor.Name,
				created.DateTime.Format(time.RFC3339))
			return nil
		}),
	}

	cmd.Flags().StringVar(&form.PatientName, "patient-name", "", "patient name")
	cmd.Flags().StringVar(&form.Age, "age", "", "patient age")
	cmd.Flags().StringVar(&form.Email, "email", "", "patient email")
	cmd.Flags().StringVar(&form.Phone, "phone", "", "patient phone")
	cmd.Flags().StringVar(&form.DoctorID, "doctor", "", "doctor canonical id")
	cmd.Flags().StringVar(&form.Reason, "reason", "", "reason for the visit")
	cmd.Flags().StringVar(&at, "at", "", "appointment time, RFC3339")
	_ = cmd.MarkFlagRequired("patient-name")
	_ = cmd.MarkFlagRequired("phone")
	_ = cmd.MarkFlagRequired("doctor")
	_ = cmd.MarkFlagRequired("at")
	return cmd
}

func newReceptionAppointmentsCmd() *cobra.Command {
	var (
		search     string
		statusFlag string
	)

	cmd := &cobra.Command{
		Use:   "appointments",
		Short: "List all appointments",
		RunE: withPortal(staff.RoleReceptionist, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			ledger := appointment.NewLedger(a.api, a.api, a.log)
			if err := ledger.Refresh(ctx); err != nil {
				return err
			}

			return printAppointments(ledger.Select(appointment.View{
				Search: search,
				Status: statusFlag,
			}))
		}),
	}

	cmd.Flags().StringVar(&search, "search", "", "filter by patient name or patient id")
	cmd.Flags().StringVar(&statusFlag, "status", appointment.StatusAll, "filter by status: pending, confirmed, cancelled, or all")
	return cmd
}

func newReceptionDecideCmd(verb string, to appointment.Status) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <appointment-id>",
		Short: verb + " a pending appointment",
		Args:  cobra.ExactArgs(1),
		RunE: withPortal(staff.RoleReceptionist, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
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

func newCallsCmd() *cobra.Command {
	var statusFlag string

	cmd := &cobra.Command{
		Use:   "calls",
		Short: "List call-back requests",
		RunE: withPortal(staff.RoleReceptionist, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			queue := callrequest.NewQueue(a.api, a.log)
			if err := queue.Refresh(ctx, callrequest.Status(statusFlag)); err != nil {
				return err
			}

			tw := newTable()
			fmt.Fprintln(tw, "ID\tNAME\tPHONE\tREASON\tSTATUS\tREQUESTED")
			for _, req := range queue.All() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					req.ID, req.Name, req.Phone, req.Reason,
					req.Status.Label(), req.CreatedAt.Format(time.RFC3339))
			}
			return tw.Flush()
		}),
	}

	cmd.Flags().StringVar(&statusFlag, "status", "", "filter: pending or completed (empty for all)")
	return cmd
}

func newAttendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "attend <call-request-id>",
		Short: "Mark a call-back request as attended",
		Args:  cobra.ExactArgs(1),
		RunE: withPortal(staff.RoleReceptionist, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			queue := callrequest.NewQueue(a.api, a.log)
			if err := queue.Refresh(ctx, ""); err != nil {
				return err
			}
			if err := queue.Attend(ctx, args[0]); err != nil {
				return err
			}

			fmt.Printf("call request %s marked as attended\n", args[0])
			return nil
		}),
	}
}
