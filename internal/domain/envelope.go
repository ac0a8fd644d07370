package domain

// Command is the verb carried in the cmd field of a CommandEnvelope.
type Command string

const (
	CommandRegister Command = "register"
	CommandPush     Command = "push"
	CommandDownload Command = "download"
	CommandAbort    Command = "abort"
)

// DefaultExitValue is reported before any program has run.
const DefaultExitValue = "0"

// CommandEnvelope is the payload POSTed to /pushcmd and /download.
// Field names match the server's wire format.
type CommandEnvelope struct {
	FirmwareName    string  `json:"firmwarename"`
	Robot           string  `json:"robot"`
	MACAddress      string  `json:"macaddr"`
	Cmd             Command `json:"cmd"`
	FirmwareVersion string  `json:"firmwareversion"`
	Token           string  `json:"token"`
	BrickName       string  `json:"brickname"`
	Battery         int     `json:"battery"`
	MenuVersion     string  `json:"menuversion"`
	ExitValue       string  `json:"nepoexitvalue"`
}

// NewEnvelope builds the envelope for a single exchange.
func NewEnvelope(id DeviceIdentity, cmd Command, exitValue string, battery int) CommandEnvelope {
	if exitValue == "" {
		exitValue = DefaultExitValue
	}
	return CommandEnvelope{
		FirmwareName:    id.FirmwareName,
		Robot:           id.RobotName,
		MACAddress:      id.MACAddress,
		Cmd:             cmd,
		FirmwareVersion: id.FirmwareVersion,
		Token:           id.Token,
		BrickName:       id.BrickName,
		Battery:         battery,
		MenuVersion:     id.MenuVersion,
		ExitValue:       exitValue,
	}
}
