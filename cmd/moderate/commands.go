package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"guesthouse/internal/domain"
	"guesthouse/internal/modules/admin"
	"guesthouse/internal/modules/booking"
	"guesthouse/internal/modules/notification"

	"github.com/spf13/cobra"
)

type serviceOpener func(ctx context.Context) (*admin.Service, error)

func newRootCmd(open serviceOpener) *cobra.Command {
	root := &cobra.Command{
		Use:   "moderate",
		Short: "Moderate guesthouse bookings",
		Long: `moderate reads and changes bookings in the configured store.

It uses the same environment as the API (DATABASE_URL, STORE_DRIVER,
EMAIL_TRANSPORT, ...), so confirmations send the same emails.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newListCmd(open),
		newConfirmCmd(open),
		newDeclineCmd(open),
		newDeleteCmd(open),
	)
	return root
}

func newListCmd(open serviceOpener) *cobra.Command {
	var status string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List bookings, newest first",
		Long: `List bookings, newest first.

Examples:
  # Everything
  moderate list

  # Only requests that still need an answer
  moderate list --status pending`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := domain.BookingStatus(status)
			switch st {
			case "", domain.BookingPending, domain.BookingConfirmed, domain.BookingDeclined:
			default:
				return fmt.Errorf("invalid --status %q: must be pending, confirmed or declined", status)
			}

			svc, err := open(cmd.Context())
			if err != nil {
				return err
			}
			items, err := svc.ListBookings(cmd.Context(), st)
			if err != nil {
				return fmt.Errorf("list bookings: %w", err)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(items)
			}
			return printBookings(cmd, items)
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "Only bookings with this status (pending, confirmed, declined)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output results as JSON")
	return cmd
}

func printBookings(cmd *cobra.Command, items []domain.Booking) error {
	if len(items) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No bookings.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tGUEST\tSTAY\tGUESTS\tCREATED")
	for _, b := range items {
		guest := b.Name
		if guest == "" {
			guest = b.RoomName
		}
		stay := "-"
		if b.CheckIn != "" || b.CheckOut != "" {
			stay = b.CheckIn + " → " + b.CheckOut
		}
		created := time.UnixMilli(b.Created).UTC().Format("2006-01-02 15:04")
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n", b.ID, b.Status, guest, stay, b.Guests, created)
	}
	return w.Flush()
}

func newConfirmCmd(open serviceOpener) *cobra.Command {
	var attach string

	cmd := &cobra.Command{
		Use:   "confirm <booking-id>",
		Short: "Confirm a pending booking and email the guest",
		Long: `Confirm a pending booking and email the guest.

Examples:
  moderate confirm 0192f0c4-5a7e-7d1b-9c35-2b1f6f0e8a11

  # Send an invoice with the confirmation
  moderate confirm 0192f0c4-5a7e-7d1b-9c35-2b1f6f0e8a11 --attach invoice.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var attachments []notification.Attachment
			if attach != "" {
				data, err := os.ReadFile(attach)
				if err != nil {
					return fmt.Errorf("read attachment: %w", err)
				}
				attachments = append(attachments, notification.PDFAttachment(data, filepath.Base(attach)))
			}

			svc, err := open(cmd.Context())
			if err != nil {
				return err
			}
			out, err := svc.Confirm(cmd.Context(), args[0], attachments...)
			if err != nil {
				return explain(err)
			}
			if out.EmailErr != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Booking confirmed, but email failed: %v\n", out.EmailErr)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Booking confirmed! Confirmation email sent to %s\n", out.Booking.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&attach, "attach", "", "PDF file to attach to the confirmation email")
	return cmd
}

func newDeclineCmd(open serviceOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "decline <booking-id>",
		Short: "Decline a pending booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := open(cmd.Context())
			if err != nil {
				return err
			}
			if _, err := svc.Decline(cmd.Context(), args[0]); err != nil {
				return explain(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Booking declined")
			return nil
		},
	}
}

func newDeleteCmd(open serviceOpener) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <booking-id>",
		Short: "Permanently delete a booking",
		Long: `Permanently delete a booking in any state. This cannot be undone, so
--yes is required.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to delete without --yes")
			}
			svc, err := open(cmd.Context())
			if err != nil {
				return err
			}
			if err := svc.Delete(cmd.Context(), args[0], true); err != nil {
				return explain(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Booking deleted")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the deletion")
	return cmd
}

func explain(err error) error {
	if errors.Is(err, admin.ErrInvalidStatusTransition) {
		return errors.New("only pending bookings can be confirmed or declined")
	}
	if errors.Is(err, booking.ErrNotFound) {
		return errors.New("no booking with that id")
	}
	return err
}
