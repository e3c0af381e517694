package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"momopress/internal/models"
	"momopress/internal/momo"
	"momopress/internal/services"
	"momopress/internal/smsstore"
)

const defaultSender = "M-Money"

type parseOptions struct {
	sender string
	phone  string
	format string
}

func newParseCmd() *cobra.Command {
	opts := &parseOptions{}
	cmd := &cobra.Command{
		Use:   "parse [xml-file]",
		Short: "Classify every MoMo message of an SMS backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd.Context(), cmd.OutOrStdout(), smsstore.NewDumpSource(args[0]), opts)
		},
	}

	cmd.Flags().StringVar(&opts.sender, "sender", defaultSender, "SMS sender to read")
	cmd.Flags().StringVar(&opts.phone, "phone", "", "Owner phone stamped on the records")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "csv", "Output format: csv or json")
	return cmd
}

func runParse(ctx context.Context, out io.Writer, src services.MessageSource, opts *parseOptions) error {
	msgs, err := src.ListMessages(ctx, opts.phone, time.Time{}, time.Time{}, opts.sender)
	if err != nil {
		return fmt.Errorf("failed to read messages: %w", err)
	}

	entries := make([]models.Entry, 0, len(msgs))
	for _, msg := range msgs {
		entries = append(entries, models.NewEntry(momo.Parse(msg, opts.phone)))
	}

	switch opts.format {
	case "json":
		return printJSON(out, entries)
	case "csv":
		return writeCSV(out, entries)
	}
	return fmt.Errorf("unknown format %q (use csv or json)", opts.format)
}

func writeCSV(out io.Writer, entries []models.Entry) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"date", "category", "direction", "counterparty", "amount", "reference", "id"}); err != nil {
		return err
	}
	for _, e := range entries {
		row := []string{
			e.Date.Format(time.RFC3339),
			string(e.Category),
			string(e.Direction),
			e.Counterparty,
			strconv.FormatInt(e.Amount, 10),
			e.Reference,
			e.ID,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func newBalanceCmd() *cobra.Command {
	var sender string
	cmd := &cobra.Command{
		Use:   "balance [xml-file]",
		Short: "Print the latest balance reported in an SMS backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msgs, err := smsstore.NewDumpSource(args[0]).ListMessages(cmd.Context(), "", time.Time{}, time.Time{}, sender)
			if err != nil {
				return fmt.Errorf("failed to read messages: %w", err)
			}
			for _, msg := range msgs {
				if balance, ok := momo.ExtractBalance(msg.Body); ok {
					fmt.Fprintf(cmd.OutOrStdout(), "%d RWF (as of %s)\n", balance, msg.Timestamp.Format(time.RFC3339))
					return nil
				}
			}
			return fmt.Errorf("no message reports a balance")
		},
	}
	cmd.Flags().StringVar(&sender, "sender", defaultSender, "SMS sender to read")
	return cmd
}
