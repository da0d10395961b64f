package conversation

import (
	"context"
	"fmt"
	"log/slog"

	"xpresabot/app/service/botlog"
	"xpresabot/app/service/brain"
	"xpresabot/app/service/knowledge"
	"xpresabot/app/service/session"
	"xpresabot/app/service/settings"

	"github.com/samber/do"
)

// ManyChat rejects text messages above this size.
const maxMessageLength = 640

type Service struct {
	settingsSvc  *settings.Service
	knowledgeSvc *knowledge.Service
	sessionSvc   *session.Service
	botlogSvc    *botlog.Service
}

func New(di *do.Injector) (*Service, error) {
	return &Service{
		settingsSvc:  do.MustInvoke[*settings.Service](di),
		knowledgeSvc: do.MustInvoke[*knowledge.Service](di),
		sessionSvc:   do.MustInvoke[*session.Service](di),
		botlogSvc:    do.MustInvoke[*botlog.Service](di),
	}, nil
}

// ProcessMessage runs one inbound message through the brain and updates the
// subscriber session. The returned outcome never carries an automated reply
// when the bot is paused or the brain stays silent.
func (s *Service) ProcessMessage(ctx context.Context, in Inbound) (Outcome, error) {
	if !s.settingsSvc.BotActive() {
		return Outcome{Action: ActionNone, Reason: ReasonBotDisabled}, nil
	}

	entries, err := s.knowledgeSvc.Entries()
	if err != nil {
		return Outcome{}, fmt.Errorf("knowledgeSvc.Entries: %w", err)
	}

	products, err := s.knowledgeSvc.Products()
	if err != nil {
		return Outcome{}, fmt.Errorf("knowledgeSvc.Products: %w", err)
	}

	data, err := s.sessionSvc.Load(ctx, in.SubscriberID)
	if err != nil {
		return Outcome{}, fmt.Errorf("sessionSvc.Load: %w", err)
	}

	history := data.Turns
	if len(in.LastMessages) > 0 {
		history = in.LastMessages
	}

	decision := brain.Select(in.Text, history, entries, products, data.LastProduct)
	data.LastProduct = decision.Product

	userTurn := session.Turn{Role: session.RoleUser, Content: in.Text}

	if decision.Silent {
		if err = s.sessionSvc.Append(ctx, in.SubscriberID, data, userTurn); err != nil {
			return Outcome{}, fmt.Errorf("sessionSvc.Append: %w", err)
		}

		slog.Debug("Staying silent", "subscriber", in.SubscriberID, "text", in.Text)

		return Outcome{Action: ActionNone, Reason: ReasonLowConfidence}, nil
	}

	if len(decision.Reply) > maxMessageLength {
		return Outcome{}, fmt.Errorf("reply is too long (%d > %d)", len(decision.Reply), maxMessageLength)
	}

	err = s.botlogSvc.Append(botlog.Record{
		SubscriberID: in.SubscriberID,
		Question:     in.Text,
		Answer:       decision.Reply,
		Source:       decision.Source,
		Confidence:   1.0,
	})
	if err != nil {
		return Outcome{}, fmt.Errorf("botlogSvc.Append: %w", err)
	}

	botTurn := session.Turn{Role: session.RoleBot, Content: decision.Reply}
	if err = s.sessionSvc.Append(ctx, in.SubscriberID, data, userTurn, botTurn); err != nil {
		return Outcome{}, fmt.Errorf("sessionSvc.Append: %w", err)
	}

	slog.Info("Replied to message",
		"subscriber", in.SubscriberID,
		"source", decision.Source,
		"text", decision.Reply)

	return Outcome{Action: ActionSendMessage, Message: decision.Reply, Source: decision.Source}, nil
}
