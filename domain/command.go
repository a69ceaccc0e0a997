package domain

// Command is an intent issued by the UI layer against the current session.
type Command interface {
	RoomID() RoomID
}

type PostMessageCommand struct {
	Room RoomID
	Text string
}

func (p PostMessageCommand) RoomID() RoomID {
	return p.Room
}

type JoinRoomCommand struct {
	Room RoomID
}

func (j JoinRoomCommand) RoomID() RoomID {
	return j.Room
}

type LeaveRoomCommand struct {
	Room RoomID
}

func (l LeaveRoomCommand) RoomID() RoomID {
	return l.Room
}
