package tool

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type outlookSvc interface {
	listEmailsSvc
	searchEmailsSvc
	getEmailSvc
	getEmailBodySvc
	sendEmailSvc
	replyEmailSvc
	forwardEmailSvc
	markEmailSvc
	moveEmailSvc
	deleteEmailSvc
	listCalendarEventsSvc
	getAppointmentSvc
	createAppointmentSvc
	respondMeetingSvc
	deleteAppointmentSvc
	listTasksSvc
	getTaskSvc
	createTaskSvc
	completeTaskSvc
	deleteTaskSvc
	listFoldersSvc
	downloadAttachmentsSvc
	currentUserSvc
}

// NewServer creates an MCP server with Outlook tools.
func NewServer(svc outlookSvc) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "outlook-mcp", Version: "v1.0.0"}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_emails",
		Description: "List recent emails from a folder, newest first",
	}, NewListEmails(svc).ListEmails)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_emails",
		Description: "Search emails by subject, sender, body, unread or attachment state",
	}, NewSearchEmails(svc).SearchEmails)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_email",
		Description: "Get a parsed email with quoted-thread deduplication and HTML normalization",
	}, NewGetEmail(svc).GetEmail)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_email_body",
		Description: "Get an email's full raw body without normalization",
	}, NewGetEmailBody(svc).GetEmailBody)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "send_email",
		Description: "Compose and send an email, or save it as a draft",
	}, NewSendEmail(svc).SendEmail)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "reply_email",
		Description: "Reply to an email, to the sender only or to all recipients",
	}, NewReplyEmail(svc).ReplyEmail)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "forward_email",
		Description: "Forward an email to new recipients",
	}, NewForwardEmail(svc).ForwardEmail)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "mark_email",
		Description: "Mark an email read or unread",
	}, NewMarkEmail(svc).MarkEmail)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "move_email",
		Description: "Move an email to another folder",
	}, NewMoveEmail(svc).MoveEmail)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_email",
		Description: "Delete an email",
	}, NewDeleteEmail(svc).DeleteEmail)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_calendar_events",
		Description: "List upcoming calendar events, recurring occurrences included",
	}, NewListCalendarEvents(svc).ListCalendarEvents)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_appointment",
		Description: "Get full details of one appointment",
	}, NewGetAppointment(svc).GetAppointment)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_appointment",
		Description: "Create a calendar appointment",
	}, NewCreateAppointment(svc).CreateAppointment)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "respond_meeting",
		Description: "Accept, decline or tentatively accept a meeting invitation",
	}, NewRespondMeeting(svc).RespondMeeting)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_appointment",
		Description: "Delete an appointment",
	}, NewDeleteAppointment(svc).DeleteAppointment)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_tasks",
		Description: "List tasks, open ones by default",
	}, NewListTasks(svc).ListTasks)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_task",
		Description: "Get full details of one task",
	}, NewGetTask(svc).GetTask)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_task",
		Description: "Create a task",
	}, NewCreateTask(svc).CreateTask)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "complete_task",
		Description: "Mark a task complete",
	}, NewCompleteTask(svc).CompleteTask)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_task",
		Description: "Delete a task",
	}, NewDeleteTask(svc).DeleteTask)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_folders",
		Description: "List the mail folder hierarchy",
	}, NewListFolders(svc).ListFolders)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "download_attachments",
		Description: "Save an email's attachments to a local directory",
	}, NewDownloadAttachments(svc).DownloadAttachments)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_current_user",
		Description: "Get the address of the signed-in account",
	}, NewGetCurrentUser(svc).GetCurrentUser)

	return server
}
