// outlookctl drives the desktop store bridge from the command line,
// printing every result as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/olbridge/outlook-mcp/internal/bridge"
	"github.com/olbridge/outlook-mcp/internal/store"
	"github.com/olbridge/outlook-mcp/internal/store/outlook"
)

const usage = `usage: outlookctl <command> [flags]

commands:
  emails              list recent emails
  search              search emails
  email               get one parsed email
  email-body          get one email's raw body
  send                send or draft an email
  reply               reply to an email
  forward             forward an email
  mark                mark an email read/unread
  move                move an email to a folder
  delete-email        delete an email
  calendar            list upcoming calendar events
  appointment         get one appointment
  create-appointment  create an appointment
  respond             respond to a meeting invitation
  delete-appointment  delete an appointment
  tasks               list tasks
  task                get one task
  create-task         create a task
  complete-task       mark a task complete
  delete-task         delete a task
  folders             list the folder hierarchy
  attachments         save an email's attachments to a directory
  whoami              print the signed-in account's address
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	conn := outlook.NewConnector(log)
	pool := store.NewPool(1, outlook.NewApartment())
	defer pool.Close()
	defer func() {
		_ = pool.Do(context.Background(), func() error { conn.Close(); return nil })
	}()

	svc := bridge.NewPinned(bridge.New(conn, log), pool)

	if err := run(context.Background(), svc, os.Args[1], os.Args[2:]); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, svc *bridge.Pinned, cmd string, args []string) error {
	switch cmd {
	case "emails":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		folder := fs.String("folder", "", "folder name, defaults to Inbox")
		limit := fs.Int("limit", 10, "max emails")
		parse(fs, args)
		out, err := svc.ListMessages(ctx, *folder, *limit)
		return printResult(out, err)

	case "search":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		subject := fs.String("subject", "", "subject substring")
		sender := fs.String("sender", "", "sender substring")
		body := fs.String("body", "", "body substring")
		unread := fs.Bool("unread", false, "only unread")
		attachments := fs.Bool("attachments", false, "only with attachments")
		folder := fs.String("folder", "", "folder name, defaults to Inbox")
		limit := fs.Int("limit", 10, "max emails")
		parse(fs, args)
		c := bridge.SearchCriteria{
			Subject: *subject,
			Sender:  *sender,
			Body:    *body,
			Folder:  *folder,
			Limit:   *limit,
		}
		if flagSet(fs, "unread") {
			c.Unread = unread
		}
		if flagSet(fs, "attachments") {
			c.HasAttachments = attachments
		}
		out, err := svc.SearchEmails(ctx, c)
		return printResult(out, err)

	case "email":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		id := fs.String("id", "", "entry ID")
		tier := fs.String("tier", "none", "deduplication tier: none, low, medium, high")
		keepHTML := fs.Bool("keep-html", false, "keep HTML parts instead of converting to text")
		parse(fs, args)
		out, err := svc.ParseMessage(ctx, *id, bridge.Tier(*tier), !*keepHTML)
		return printResult(out, err)

	case "email-body":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		id := fs.String("id", "", "entry ID")
		parse(fs, args)
		out, err := svc.GetEmailBody(ctx, *id)
		return printResult(out, err)

	case "send":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		to := fs.String("to", "", "recipients, semicolon separated")
		subject := fs.String("subject", "", "subject")
		body := fs.String("body", "", "plain text body")
		cc := fs.String("cc", "", "CC recipients")
		bcc := fs.String("bcc", "", "BCC recipients")
		htmlBody := fs.String("html-body", "", "HTML body")
		draft := fs.Bool("draft", false, "save as draft instead of sending")
		parse(fs, args)
		draftID, err := svc.SendEmail(ctx, bridge.SendOptions{
			To:        *to,
			Subject:   *subject,
			Body:      *body,
			CC:        *cc,
			BCC:       *bcc,
			HTMLBody:  *htmlBody,
			SaveDraft: *draft,
			FilePaths: fs.Args(),
		})
		return printResult(map[string]string{"draft_entry_id": draftID}, err)

	case "reply":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		id := fs.String("id", "", "entry ID")
		body := fs.String("body", "", "reply body")
		all := fs.Bool("all", false, "reply to all")
		parse(fs, args)
		return printStatus("sent", svc.ReplyEmail(ctx, *id, *body, *all))

	case "forward":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		id := fs.String("id", "", "entry ID")
		to := fs.String("to", "", "recipients, semicolon separated")
		body := fs.String("body", "", "text prepended above the forwarded content")
		parse(fs, args)
		return printStatus("sent", svc.ForwardEmail(ctx, *id, *to, *body))

	case "mark":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		id := fs.String("id", "", "entry ID")
		unread := fs.Bool("unread", false, "mark unread instead of read")
		parse(fs, args)
		return printStatus("marked", svc.MarkEmail(ctx, *id, *unread))

	case "move":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		id := fs.String("id", "", "entry ID")
		folder := fs.String("folder", "", "destination folder")
		parse(fs, args)
		return printStatus("moved", svc.MoveEmail(ctx, *id, *folder))

	case "delete-email":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		id := fs.String("id", "", "entry ID")
		parse(fs, args)
		return printStatus("deleted", svc.DeleteEmail(ctx, *id))

	case "calendar":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		days := fs.Int("days", 7, "days ahead")
		all := fs.Bool("all", false, "all events, no window")
		parse(fs, args)
		start := time.Now()
		out, err := svc.ListCalendarEvents(ctx, start, start.Add(time.Duration(*days)*24*time.Hour), *all)
		return printResult(out, err)

	case "appointment":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		id := fs.String("id", "", "entry ID")
		parse(fs, args)
		out, err := svc.GetAppointment(ctx, *id)
		return printResult(out, err)

	case "create-appointment":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		subject := fs.String("subject", "", "subject")
		start := fs.String("start", "", "start time, YYYY-MM-DD HH:MM local")
		end := fs.String("end", "", "end time, defaults to start plus 30 minutes")
		location := fs.String("location", "", "location")
		body := fs.String("body", "", "body")
		allDay := fs.Bool("all-day", false, "all-day event")
		required := fs.String("required", "", "required attendees")
		optional := fs.String("optional", "", "optional attendees")
		parse(fs, args)
		startT, err := time.ParseInLocation("2006-01-02 15:04", *start, time.Local)
		if err != nil {
			return fmt.Errorf("invalid -start: %w", err)
		}
		endT := startT.Add(30 * time.Minute)
		if *end != "" {
			endT, err = time.ParseInLocation("2006-01-02 15:04", *end, time.Local)
			if err != nil {
				return fmt.Errorf("invalid -end: %w", err)
			}
		}
		id, err := svc.CreateAppointment(ctx, bridge.AppointmentOptions{
			Subject:           *subject,
			Start:             startT,
			End:               endT,
			Location:          *location,
			Body:              *body,
			AllDay:            *allDay,
			RequiredAttendees: *required,
			OptionalAttendees: *optional,
		})
		return printResult(map[string]string{"entry_id": id}, err)

	case "respond":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		id := fs.String("id", "", "entry ID")
		response := fs.String("response", "", "accept, decline or tentative")
		parse(fs, args)
		return printStatus("responded", svc.RespondMeeting(ctx, *id, *response))

	case "delete-appointment":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		id := fs.String("id", "", "entry ID")
		parse(fs, args)
		return printStatus("deleted", svc.DeleteAppointment(ctx, *id))

	case "tasks":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		completed := fs.Bool("completed", false, "include completed tasks")
		parse(fs, args)
		out, err := svc.ListTasks(ctx, *completed)
		return printResult(out, err)

	case "task":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		id := fs.String("id", "", "entry ID")
		parse(fs, args)
		out, err := svc.GetTask(ctx, *id)
		return printResult(out, err)

	case "create-task":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		subject := fs.String("subject", "", "subject")
		body := fs.String("body", "", "body")
		due := fs.String("due", "", "due date, YYYY-MM-DD")
		importance := fs.Int("importance", 1, "0 low, 1 normal, 2 high")
		parse(fs, args)
		id, err := svc.CreateTask(ctx, *subject, *body, *due, *importance)
		return printResult(map[string]string{"entry_id": id}, err)

	case "complete-task":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		id := fs.String("id", "", "entry ID")
		parse(fs, args)
		return printStatus("completed", svc.CompleteTask(ctx, *id))

	case "delete-task":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		id := fs.String("id", "", "entry ID")
		parse(fs, args)
		return printStatus("deleted", svc.DeleteTask(ctx, *id))

	case "folders":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		root := fs.String("root", "", "root folder, defaults to the inbox's account root")
		parse(fs, args)
		out, err := svc.ListFolders(ctx, *root)
		return printResult(out, err)

	case "attachments":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		id := fs.String("id", "", "entry ID")
		dir := fs.String("dir", ".", "directory to save into")
		parse(fs, args)
		out, err := svc.DownloadAttachments(ctx, *id, *dir)
		return printResult(map[string]any{"saved_paths": out}, err)

	case "whoami":
		addr, err := svc.CurrentUser(ctx)
		return printResult(map[string]string{"address": addr}, err)
	}

	fmt.Fprint(os.Stderr, usage)
	return fmt.Errorf("unknown command %q", cmd)
}

func parse(fs *flag.FlagSet, args []string) {
	// ExitOnError: Parse only returns on success.
	_ = fs.Parse(args)
}

func flagSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func printResult(v any, err error) error {
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printStatus(status string, err error) error {
	return printResult(map[string]string{"status": status}, err)
}
