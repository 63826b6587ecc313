package bot

import (
	"time"

	tele "gopkg.in/telebot.v3"
)

// Bot wires the flow to Telegram long polling.
type Bot struct {
	tb   *tele.Bot
	flow *Flow
}

func New(token string, flow *Flow) (*Bot, error) {
	tb, err := tele.NewBot(tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return nil, err
	}

	b := &Bot{tb: tb, flow: flow}
	tb.Handle("/start", b.onStart)
	tb.Handle("/me", b.onProfile)
	tb.Handle(tele.OnText, b.onText)
	tb.Handle(tele.OnContact, b.onContact)
	return b, nil
}

// Start blocks, polling for updates.
func (b *Bot) Start() {
	b.tb.Start()
}

func (b *Bot) Stop() {
	b.tb.Stop()
}

func (b *Bot) onStart(c tele.Context) error {
	return b.send(c, b.flow.Start(c.Sender().ID))
}

func (b *Bot) onProfile(c tele.Context) error {
	return b.send(c, b.flow.Profile(c.Sender().ID))
}

func (b *Bot) onText(c tele.Context) error {
	return b.send(c, b.flow.Text(c.Sender().ID, c.Text()))
}

func (b *Bot) onContact(c tele.Context) error {
	contact := c.Message().Contact
	if contact == nil {
		return b.send(c, b.flow.Text(c.Sender().ID, ""))
	}
	return b.send(c, b.flow.Contact(c.Sender().ID, contact.PhoneNumber))
}

func (b *Bot) send(c tele.Context, r Reply) error {
	switch r.Keyboard {
	case KeyboardContact:
		markup := &tele.ReplyMarkup{ResizeKeyboard: true}
		markup.Reply(markup.Row(markup.Contact("Share your phone")))
		return c.Send(r.Text, markup)
	case KeyboardRole:
		markup := &tele.ReplyMarkup{ResizeKeyboard: true, OneTimeKeyboard: true}
		markup.Reply(markup.Row(markup.Text("Driver"), markup.Text("Passenger")))
		return c.Send(r.Text, markup)
	case KeyboardRemove:
		return c.Send(r.Text, &tele.ReplyMarkup{RemoveKeyboard: true})
	default:
		return c.Send(r.Text)
	}
}
