// Package mail delivers group invite notifications. The concrete sender is an
// external collaborator; correctness of the share manager does not depend on
// delivery, and invites are mailed only after the authorizing transaction has
// committed.
package mail

import (
	"fmt"
	"net/smtp"

	"go.uber.org/zap"
)

// Sender accepts a templated invite notification with a callback URL.
type Sender interface {
	SendGroupInvite(to string, groupName string, callbackURL string) error
}

// SMTPSender delivers invite mail over plain SMTP.
type SMTPSender struct {
	Host   string
	Port   string
	From   string
	Logger *zap.Logger
}

// NewSMTPSender constructs an SMTPSender.
func NewSMTPSender(host, port, from string, logger *zap.Logger) *SMTPSender {
	return &SMTPSender{Host: host, Port: port, From: from, Logger: logger}
}

// SendGroupInvite implements Sender.
func (s *SMTPSender) SendGroupInvite(to string, groupName string, callbackURL string) error {
	body := fmt.Sprintf("To: %s\r\nSubject: Invitation to join %s\r\n\r\n"+
		"You have been invited to join the group %s.\r\n"+
		"Follow this link to accept: %s\r\n", to, groupName, groupName, callbackURL)
	err := smtp.SendMail(s.Host+":"+s.Port, nil, s.From, []string{to}, []byte(body))
	if err != nil {
		s.Logger.Error("could not send invite mail", zap.String("to", to), zap.Error(err))
	}
	return err
}

// Invite records one delivered invite on the FakeSender.
type Invite struct {
	To          string
	GroupName   string
	CallbackURL string
}

// FakeSender is suitable for tests. Sent invites are recorded in order.
type FakeSender struct {
	Err     error
	Invites []Invite
}

// SendGroupInvite for FakeSender.
func (fake *FakeSender) SendGroupInvite(to string, groupName string, callbackURL string) error {
	if fake.Err != nil {
		return fake.Err
	}
	fake.Invites = append(fake.Invites, Invite{To: to, GroupName: groupName, CallbackURL: callbackURL})
	return nil
}
