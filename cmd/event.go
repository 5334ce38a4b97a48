package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/slotbot/internal/adapters/prompt/terminal"
	ledgerrender "github.com/bnema/slotbot/internal/adapters/render/ledger"
	"github.com/bnema/slotbot/internal/application"
	"github.com/bnema/slotbot/internal/domain"
	"github.com/spf13/cobra"
)

func newEventCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Create, edit and inspect event documents",
	}

	cmd.AddCommand(
		newEventCreateCmd(app),
		newEventEditCmd(app),
		newEventShowCmd(app),
	)

	return cmd
}

func newEventCreateCmd(app *app) *cobra.Command {
	var actor actorFlags
	var details domain.EventSpec
	var id string
	var start string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an event document with numbered slots",
		RunE: func(cmd *cobra.Command, _ []string) error {
			startTime, err := parseStart(start)
			if err != nil {
				return err
			}
			details.ID = domain.DocumentID(strings.TrimSpace(id))
			details.StartTime = startTime

			return dispatchWithSpinner(cmd, app, application.Request{
				Kind:  application.RequestCreateEvent,
				Actor: actor.actor(),
				Event: details,
			})
		},
	}

	actor.bind(cmd, true)
	cmd.Flags().StringVar(&id, "id", "", "Event id (generated when empty)")
	cmd.Flags().StringVar(&details.Title, "title", "", "Event title")
	cmd.Flags().StringVar(&details.Description, "description", "", "Event description")
	cmd.Flags().StringVar(&start, "start", "", "Start time (RFC3339 or unix seconds)")
	cmd.Flags().IntVar(&details.Slots, "slots", 0, "Number of slots")
	cmd.Flags().IntVar(&details.PeoplePerSlot, "people-per-slot", domain.DefaultPeoplePerSlot, "People allowed per slot")
	cmd.Flags().IntVar(&details.SlotsPerPerson, "slots-per-person", domain.DefaultSlotsPerPerson, "Slots one person may hold")
	cmd.Flags().IntVar(&details.DurationMinutes, "duration", 0, "Slot length in minutes")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("slots")
	_ = cmd.MarkFlagRequired("duration")

	return cmd
}

func newEventEditCmd(app *app) *cobra.Command {
	var actor actorFlags
	var eventID string
	var path string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Replace the text of an event document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			text, err := readDocumentText(cmd.InOrStdin(), path)
			if err != nil {
				return err
			}

			return dispatchWithSpinner(cmd, app, application.Request{
				Kind:     application.RequestEditEvent,
				Actor:    actor.actor(),
				Document: domain.DocumentID(eventID),
				Text:     text,
			})
		},
	}

	actor.bind(cmd, true)
	cmd.Flags().StringVar(&eventID, "event", "", "Event id")
	cmd.Flags().StringVar(&path, "file", "", "File holding the new document text (- for stdin)")
	_ = cmd.MarkFlagRequired("event")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

type slotView struct {
	Number    int      `json:"number"`
	Label     string   `json:"label"`
	Occupants []string `json:"occupants"`
}

type eventView struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	StartTime      int64      `json:"start_time,omitempty"`
	DeclaredSlots  int        `json:"declared_slots,omitempty"`
	PeoplePerSlot  int        `json:"people_per_slot"`
	SlotsPerPerson int        `json:"slots_per_person"`
	Slots          []slotView `json:"slots"`
}

func newEventShowCmd(app *app) *cobra.Command {
	var eventID string
	var actorID string
	var raw bool
	var asJSON bool
	var watch bool
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the slots of an event",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if watch {
				fetch := func(ctx context.Context) (domain.Ledger, error) {
					_, ledger, err := app.ledgers.Snapshot(ctx, domain.DocumentID(eventID))
					return ledger, err
				}
				return ledgerrender.Watch(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), fetch, ledgerrender.WatchOptions{
					Interval: interval,
					Actor:    domain.ActorID(strings.TrimSpace(actorID)),
					Now:      app.now,
				})
			}

			doc, ledger, err := app.ledgers.Snapshot(cmd.Context(), domain.DocumentID(eventID))
			if err != nil {
				return err
			}

			switch {
			case raw:
				_, err = fmt.Fprintln(cmd.OutOrStdout(), doc.Text)
				return err
			case asJSON:
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(toEventView(doc.ID, ledger))
			}

			rendered := app.ledgerRender(ledger, ledgerrender.RenderOptions{
				Now:   app.now(),
				Actor: domain.ActorID(strings.TrimSpace(actorID)),
			})

			_, err = fmt.Fprintln(cmd.OutOrStdout(), sanitizeForTerminal(rendered))
			return err
		},
	}

	cmd.Flags().StringVar(&eventID, "event", "", "Event id")
	cmd.Flags().StringVar(&actorID, "actor", "", "Highlight the slots held by this user")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the document text")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the decoded slots as JSON")
	cmd.Flags().BoolVar(&watch, "watch", false, "Keep the sheet on screen and refresh it")
	cmd.Flags().DurationVar(&interval, "interval", ledgerrender.DefaultWatchInterval, "Refresh interval for --watch")
	cmd.MarkFlagsMutuallyExclusive("watch", "raw", "json")
	_ = cmd.MarkFlagRequired("event")

	return cmd
}

func toEventView(id domain.DocumentID, ledger domain.Ledger) eventView {
	slots := make([]slotView, 0, len(ledger.Slots))
	for _, slot := range ledger.Slots {
		occupants := make([]string, 0, len(slot.Occupants))
		for _, occupant := range slot.Occupants {
			occupants = append(occupants, string(occupant))
		}
		slots = append(slots, slotView{Number: slot.Number, Label: slot.Label, Occupants: occupants})
	}

	return eventView{
		ID:             string(id),
		Title:          ledger.Title,
		StartTime:      ledger.StartTime,
		DeclaredSlots:  ledger.DeclaredSlots,
		PeoplePerSlot:  ledger.PeoplePerSlot,
		SlotsPerPerson: ledger.SlotsPerPerson,
		Slots:          slots,
	}
}

func dispatchWithSpinner(cmd *cobra.Command, app *app, req application.Request) error {
	dispatcher := app.dispatcher(terminal.NewStatic(nil), cmd.OutOrStdout())
	return runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), progressLabelsFor(req.Kind), func(ctx context.Context) error {
		return dispatcher.Handle(ctx, req)
	})
}

func parseStart(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if unix, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}

	parsed, err := time.Parse(time.RFC3339, trimmed)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start time %q: use RFC3339 or unix seconds", raw)
	}
	return parsed.UTC(), nil
}

func readDocumentText(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read document from stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read document file: %w", err)
	}
	return string(data), nil
}
