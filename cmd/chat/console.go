package main

import (
	"bufio"
	"chat-session/chat"
	"chat-session/domain"
	"chat-session/errors"
	"chat-session/runtime"
	"chat-session/transport"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
)

const helpText = `Commands:
  /rooms                 list every room
  /mine                  list the rooms you belong to
  /create <name> [desc]  create a room
  /join <room>           switch to a room
  /leave                 leave the current room
  /users                 members of the current room
  /history               reload the current room history
  /stats                 session counters
  /logout                sign out and quit
  /quit                  quit
Anything else is sent to the current room.`

type console struct {
	out     io.Writer
	session *runtime.Session
	user    domain.User
	mu      sync.Mutex
}

func newConsole(out io.Writer, session *runtime.Session, user domain.User) *console {
	return &console{out: out, session: session, user: user}
}

func (c *console) printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format, args...)
}

func (c *console) printMessage(msg domain.Message) {
	at := msg.Timestamp.Local().Format("15:04")
	switch {
	case msg.IsSystem():
		c.printf("%s %s\n", color.Gray.Sprint(at), color.Gray.Sprint("* "+msg.Text))
	case msg.SenderID == c.user.ID:
		c.printf("%s %s %s\n", color.Gray.Sprint(at), color.Green.Sprint(msg.SenderName+":"), msg.Text)
	default:
		c.printf("%s %s %s\n", color.Gray.Sprint(at), color.Cyan.Sprint(msg.SenderName+":"), msg.Text)
	}
}

func (c *console) printStatus(status transport.Status) {
	if status.State == transport.Open || status.State == transport.Closed {
		c.printf("%s\n", color.Yellow.Sprint("[connection "+status.String()+"]"))
	}
}

func (c *console) printTimeline() {
	c.printf("%s\n", color.New(color.BgBlack, color.FgGreen).Render(fmt.Sprintf("  ====== #%s ======", c.session.Timeline.Room())))
	for _, msg := range c.session.Timeline.Messages() {
		c.printMessage(msg)
	}
}

func (c *console) printError(err error) {
	c.printf("%s\n", color.Red.Sprint("error: "+err.Error()))
}

// loop reads lines until ctx is done, input ends, or the user quits.
func (c *console) loop(ctx context.Context, scanner *bufio.Scanner) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			quit, err := c.handle(ctx, line)
			if stderrors.Is(err, errors.ErrAuthenticationFailed) {
				return err
			}
			if err != nil {
				c.printError(err)
			}
			if quit {
				return nil
			}
		}
	}
}

// parseCommand splits "/name arg rest" into name and the remaining text.
func parseCommand(line string) (name, args string, ok bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "/") {
		return "", line, false
	}
	name, args, _ = strings.Cut(line[1:], " ")
	return strings.ToLower(name), strings.TrimSpace(args), true
}

func (c *console) handle(ctx context.Context, line string) (quit bool, err error) {
	name, args, isCommand := parseCommand(line)
	room := c.session.Timeline.Room()
	if !isCommand {
		if args == "" {
			return false, nil
		}
		return false, c.session.Chat.Dispatch(ctx, domain.PostMessageCommand{Room: room, Text: args})
	}

	switch name {
	case "help":
		c.printf("%s\n", helpText)
	case "quit", "exit":
		return true, nil
	case "logout":
		c.session.Auth.Logout(ctx)
		return true, nil
	case "rooms":
		rooms, err := c.session.Chat.Rooms(ctx)
		if err != nil {
			return false, err
		}
		c.renderRooms(rooms)
	case "mine":
		rooms, err := c.session.Chat.UserRooms(ctx)
		if err != nil {
			return false, err
		}
		c.renderRooms(rooms)
	case "create":
		roomName, description, _ := strings.Cut(args, " ")
		created, err := c.session.Chat.CreateRoom(ctx, chat.CreateRoomRequest{Name: roomName, Description: description})
		if err != nil {
			return false, err
		}
		c.printf("Room %s created (%s)\n", created.Name, created.ID)
	case "join":
		if args == "" {
			return false, fmt.Errorf("%w: usage /join <room>", errors.ErrNoRoom)
		}
		err = c.session.Chat.Dispatch(ctx, domain.JoinRoomCommand{Room: domain.RoomID(args)})
		c.printTimeline()
		return false, err
	case "leave":
		return false, c.session.Chat.Dispatch(ctx, domain.LeaveRoomCommand{Room: room})
	case "users":
		users, err := c.session.Chat.RoomUsers(ctx, room)
		if err != nil {
			return false, err
		}
		c.renderUsers(users)
	case "history":
		err = c.session.Chat.LoadHistory(ctx)
		c.printTimeline()
		return false, err
	case "stats":
		stats := c.session.Monitor.Snapshot()
		c.printf("state=%s in=%d out=%d dropped=%d malformed=%d reconnects=%d refresh=%d/%d\n",
			c.session.Transport.Status(), stats.FramesIn, stats.FramesOut, stats.DroppedSends,
			stats.MalformedFrames, stats.ReconnectAttempts, stats.RefreshSuccess, stats.RefreshFailure)
	default:
		return false, fmt.Errorf("%w: unknown command /%s, try /help", errors.ErrInvalidRequest, name)
	}
	return false, nil
}

func (c *console) table() *tablewriter.Table {
	table := tablewriter.NewWriter(c.out)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

func (c *console) renderRooms(rooms []domain.Room) {
	c.mu.Lock()
	defer c.mu.Unlock()
	table := c.table()
	table.SetHeader([]string{"ID", "Name", "Members", "Private", "Description"})
	for _, r := range rooms {
		table.Append([]string{r.ID.String(), r.Name, fmt.Sprint(r.MemberCount), fmt.Sprint(r.IsPrivate), r.Description})
	}
	table.Render()
}

func (c *console) renderUsers(users []domain.ChatUser) {
	c.mu.Lock()
	defer c.mu.Unlock()
	table := c.table()
	table.SetHeader([]string{"ID", "Name", "Online"})
	for _, u := range users {
		table.Append([]string{u.ID, u.Name, fmt.Sprint(u.IsOnline)})
	}
	table.Render()
}
